package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records metrics as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a Sentry metrics recorder. It is a no-op
// when Sentry has no client.
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: sentry.CurrentHub().Client() != nil,
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	success := statusCode < successStatusCodeThreshold
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", success))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordAffirmation records how many affirmations were served and whether
// the safety filter redirected the request
func (m *SentryMetrics) RecordAffirmation(ctx context.Context, served int, redirected bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "affirm.result")
	defer span.Finish()

	span.SetTag("redirected", fmt.Sprintf("%t", redirected))
	span.SetData("served", served)
	span.SetData("redirected", redirected)
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Affirmations served: %d", served)
}
