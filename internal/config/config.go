package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server and CLI.
type Config struct {
	ServerAddr  string
	CORSOrigins []string

	BlobDir string
	WorkDir string

	FFmpegBin      string
	FFprobeBin     string
	PlayableCodecs []string

	ProbeTimeout     time.Duration
	FetchTimeout     time.Duration
	FetchMaxBytes    int64
	TranscodeTimeout time.Duration

	ViewportWidth      int
	ViewportHeight     int
	ResolveConcurrency int

	Locale     string
	LocaleFile string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and environment variables and returns
// normalized runtime config.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServerAddr:         getEnv("SERVER_ADDR", ":8080"),
		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"*"}),
		BlobDir:            getEnv("BLOB_DIR", "./blobs"),
		WorkDir:            getEnv("WORK_DIR", filepath.Join(os.TempDir(), "photoframe")),
		FFmpegBin:          getEnv("FFMPEG_BIN", "ffmpeg"),
		FFprobeBin:         getEnv("FFPROBE_BIN", "ffprobe"),
		PlayableCodecs:     getEnvList("PLAYABLE_CODECS", []string{"h264", "vp8", "vp9", "av1"}),
		ProbeTimeout:       getEnvDuration("PROBE_TIMEOUT", time.Second),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", 60*time.Second),
		FetchMaxBytes:      int64(getEnvInt("FETCH_MAX_BYTES", 2<<30)),
		TranscodeTimeout:   getEnvDuration("TRANSCODE_TIMEOUT", 5*time.Minute),
		ViewportWidth:      getEnvInt("VIEWPORT_WIDTH", 1920),
		ViewportHeight:     getEnvInt("VIEWPORT_HEIGHT", 1080),
		ResolveConcurrency: getEnvInt("RESOLVE_CONCURRENCY", 4),
		Locale:             getEnv("LOCALE", "en"),
		LocaleFile:         strings.TrimSpace(os.Getenv("LOCALE_FILE")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.BlobDir == "" {
		return fmt.Errorf("BLOB_DIR is required")
	}
	if len(c.PlayableCodecs) == 0 {
		return fmt.Errorf("PLAYABLE_CODECS must list at least one codec")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("PROBE_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out int
	_, err := fmt.Sscanf(value, "%d", &out)
	if err != nil || out <= 0 {
		return fallback
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
