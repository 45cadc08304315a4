package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"photoframe/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_LogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(zerolog.New(&buf))

	before := testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("Unknown file type"))
	r.Report(context.Background(), errors.New("unknown file type - 9"), "Unknown file type", map[string]any{"fileID": 4})

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DiagnosticsTotal.WithLabelValues("Unknown file type")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "Unknown file type", line["context"])
	assert.Equal(t, "unknown file type - 9", line["error"])
	assert.Equal(t, map[string]any{"fileID": float64(4)}, line["extra"])
}
