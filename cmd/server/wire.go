package main

import (
	"context"
	"fmt"
	"time"

	appmedia "photoframe/internal/application/media"
	"photoframe/internal/application/playback"
	"photoframe/internal/config"
	"photoframe/internal/domain/media"
	"photoframe/internal/infrastructure/detect"
	"photoframe/internal/infrastructure/fetch"
	"photoframe/internal/infrastructure/ffmpeg"
	"photoframe/internal/infrastructure/filesystem"
	"photoframe/internal/infrastructure/i18n"
	"photoframe/internal/infrastructure/report"
	applog "photoframe/internal/log"
	"photoframe/internal/render"
)

// app holds the wired components shared by every command.
type app struct {
	cfg      config.Config
	store    *filesystem.Store
	prober   *playback.Prober
	service  *appmedia.Service
	renderer *render.Renderer
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	applog.Configure(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store := filesystem.NewStore(cfg.BlobDir)
	if err := store.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	converter := ffmpeg.NewConverter(cfg.FFmpegBin, cfg.FFprobeBin, cfg.WorkDir, cfg.PlayableCodecs, store)
	prober := playback.NewProber(converter, cfg.ProbeTimeout)

	catalog, err := i18n.Load(cfg.Locale, cfg.LocaleFile)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}

	service := appmedia.NewService(appmedia.Deps{
		Prober:      prober,
		Fetcher:     fetch.NewClient(cfg.FetchTimeout, cfg.FetchMaxBytes, store),
		Detector:    detect.NewDetector(),
		Transcoder:  timeoutTranscoder{next: converter, timeout: cfg.TranscodeTimeout},
		Blobs:       store,
		Reporter:    report.NewReporter(applog.WithComponent("diagnostics")),
		Viewport:    media.Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
		Concurrency: cfg.ResolveConcurrency,
	})

	return &app{
		cfg:      cfg,
		store:    store,
		prober:   prober,
		service:  service,
		renderer: render.NewRenderer(catalog),
	}, nil
}

// timeoutTranscoder bounds every transcode by a fixed deadline.
type timeoutTranscoder struct {
	next    appmedia.Transcoder
	timeout time.Duration
}

func (t timeoutTranscoder) Transcode(ctx context.Context, title string, data []byte) (appmedia.Blob, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Transcode(ctx, title, data)
}
