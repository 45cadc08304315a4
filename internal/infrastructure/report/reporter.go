// Package report is the diagnostic sink for non-fatal resolution problems.
package report

import (
	"context"

	"photoframe/internal/metrics"

	"github.com/rs/zerolog"
)

// Reporter logs diagnostics as structured error lines and counts them.
type Reporter struct {
	logger zerolog.Logger
}

// NewReporter creates a reporter writing to logger.
func NewReporter(logger zerolog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report never blocks and never fails.
func (r *Reporter) Report(_ context.Context, err error, msg string, extra map[string]any) {
	metrics.DiagnosticsTotal.WithLabelValues(msg).Inc()

	event := r.logger.Error().Err(err).Str("context", msg)
	if len(extra) > 0 {
		event = event.Interface("extra", extra)
	}
	event.Msg("diagnostic reported")
}
