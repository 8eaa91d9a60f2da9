package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Conceptual-Machines/mindloop/internal/affirm"
	"github.com/Conceptual-Machines/mindloop/internal/logger"
	"github.com/Conceptual-Machines/mindloop/internal/metrics"
	"github.com/gin-gonic/gin"
)

type AffirmHandler struct {
	generator *affirm.Generator
	recorder  metrics.Recorder
}

func NewAffirmHandler(generator *affirm.Generator, recorder metrics.Recorder) *AffirmHandler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &AffirmHandler{
		generator: generator,
		recorder:  recorder,
	}
}

// AffirmRequest is the request body of POST /api/affirm.
// Count is canonical; Mode ("1x", "3x", "5x") is honored only when Count is absent.
type AffirmRequest struct {
	Prompt string `json:"prompt"`
	Count  *int   `json:"count"`
	Mode   string `json:"mode"`
}

type AffirmResponse struct {
	Affirmations string `json:"affirmations"`
}

// requestedCount resolves the count selector, defaulting to 1
func (r AffirmRequest) requestedCount() int {
	if r.Count != nil {
		return *r.Count
	}
	mode := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(r.Mode)), "x")
	if n, err := strconv.Atoi(mode); err == nil {
		return n
	}
	return 1
}

// Affirm serves a formatted block of affirmations for a prompt
func (h *AffirmHandler) Affirm(c *gin.Context) {
	c.Header(headerCacheControl, cacheNoStore)
	start := time.Now()

	var req AffirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to parse affirmation request", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errGenerateFailed})
		return
	}

	resp := h.generator.Generate(affirm.GenerationRequest{
		Prompt: req.Prompt,
		Count:  req.requestedCount(),
	})

	fields := logger.WithContext(c)
	fields["requested"] = resp.Requested
	if resp.Capped {
		c.Header(headerCapped, "true")
		fields["capped_to"] = resp.Count
	}
	if resp.Redirected {
		fields["matched_word"] = resp.MatchedWord
	}
	logger.LogAffirmation(c.Request.Context(), time.Since(start), resp.Count, resp.Redirected, fields)
	h.recorder.RecordAffirmation(c.Request.Context(), resp.Count, resp.Redirected)

	c.JSON(http.StatusOK, AffirmResponse{Affirmations: resp.Text})
}
