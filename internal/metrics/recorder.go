package metrics

import (
	"context"
	"time"
)

// Recorder receives API and affirmation metrics.
type Recorder interface {
	RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration)
	RecordAffirmation(ctx context.Context, served int, redirected bool)
}

// Multi fans every record out to each of its recorders.
type Multi []Recorder

func (m Multi) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	for _, r := range m {
		r.RecordAPIRequest(ctx, endpoint, statusCode, duration)
	}
}

func (m Multi) RecordAffirmation(ctx context.Context, served int, redirected bool) {
	for _, r := range m {
		r.RecordAffirmation(ctx, served, redirected)
	}
}

// Nop discards all metrics.
type Nop struct{}

func (Nop) RecordAPIRequest(context.Context, string, int, time.Duration) {}

func (Nop) RecordAffirmation(context.Context, int, bool) {}
