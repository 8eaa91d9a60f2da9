package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestFormatFieldsSorted(t *testing.T) {
	got := formatFields(Fields{"status_code": 200, "path": "/api/affirm", "ratio": 0.5, "ok": true})
	assert.Equal(t, "{ok=true, path=/api/affirm, ratio=0.50, status_code=200}", got)
	assert.Equal(t, "", formatFields(nil))
}

func TestLevelsWriteToStandardLogger(t *testing.T) {
	buf := captureLog(t)

	Info("started", Fields{"port": "8080"})
	Warn("slow", nil)
	Debug("tick", Fields{"n": int64(3)})
	Error("failed", errors.New("boom"), Fields{"request_id": "abc"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] started {port=8080}")
	assert.Contains(t, out, "[WARN] slow")
	assert.Contains(t, out, "[DEBUG] tick {n=3}")
	assert.Contains(t, out, "[ERROR] failed: boom {request_id=abc}")
}
