package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SERVER_ADDR", "PROBE_TIMEOUT", "PLAYABLE_CODECS", "RESOLVE_CONCURRENCY", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, time.Second, cfg.ProbeTimeout)
	assert.Equal(t, []string{"h264", "vp8", "vp9", "av1"}, cfg.PlayableCodecs)
	assert.Equal(t, 4, cfg.ResolveConcurrency)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROBE_TIMEOUT", "250ms")
	t.Setenv("PLAYABLE_CODECS", "h264, hevc ,")
	t.Setenv("VIEWPORT_WIDTH", "390")
	t.Setenv("RESOLVE_CONCURRENCY", "-3")
	t.Setenv("FETCH_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, []string{"h264", "hevc"}, cfg.PlayableCodecs)
	assert.Equal(t, 390, cfg.ViewportWidth)
	assert.Equal(t, 4, cfg.ResolveConcurrency)
	assert.Equal(t, 60*time.Second, cfg.FetchTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Config{ServerAddr: ":1", BlobDir: "b", PlayableCodecs: []string{"h264"}, ProbeTimeout: time.Second}
	assert.NoError(t, cfg.Validate())

	cfg.PlayableCodecs = nil
	assert.Error(t, cfg.Validate())
}
