package media

import (
	"context"
	"errors"
	"fmt"

	"photoframe/internal/domain/media"
	applog "photoframe/internal/log"
	"photoframe/internal/metrics"

	"github.com/rs/zerolog"
)

// Deps are the collaborators a Service needs.
type Deps struct {
	Prober     Prober
	Fetcher    Fetcher
	Detector   TypeDetector
	Transcoder Transcoder
	Blobs      BlobStore
	Reporter   ErrorReporter

	// Viewport is used when the context carries none.
	Viewport media.Viewport
	// Concurrency bounds ResolveAll.
	Concurrency int
}

// Service resolves gallery files into renderable payloads.
//
// A file must be resolved at most once; concurrent resolution of the same
// file is not supported. Different files share no state.
type Service struct {
	prober      Prober
	fetcher     Fetcher
	detector    TypeDetector
	transcoder  Transcoder
	blobs       BlobStore
	reporter    ErrorReporter
	viewport    media.Viewport
	concurrency int
	logger      zerolog.Logger
}

// NewService creates a resolver service with injected ports.
func NewService(deps Deps) *Service {
	viewport := deps.Viewport
	if viewport.Width <= 0 || viewport.Height <= 0 {
		viewport = media.DefaultViewport
	}
	concurrency := deps.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Service{
		prober:      deps.Prober,
		fetcher:     deps.Fetcher,
		detector:    deps.Detector,
		transcoder:  deps.Transcoder,
		blobs:       deps.Blobs,
		reporter:    deps.Reporter,
		viewport:    viewport,
		concurrency: concurrency,
		logger:      applog.WithComponent("resolver"),
	}
}

// Resolve picks the renderable representation for file and returns the
// updated record. A non-nil error is always a *media.RetryError; the
// returned file then already carries a download fallback.
//
// A malformed bundle is reported and never probed. Images fall back to the
// first original URL; videos go straight to Transcode-and-Retry and live
// photos to the download button, so video content always keeps a download
// path.
func (s *Service) Resolve(ctx context.Context, file media.MediaFile, bundle media.SourceURLBundle) (media.MediaFile, error) {
	logger := s.logger.With().Int64(applog.FieldFileID, file.ID).Str(applog.FieldFileType, file.Type.String()).Logger()

	slots, err := media.ParseSlots(file.Type, bundle)
	malformed := err != nil
	if malformed {
		s.report(ctx, err, "Malformed source url bundle", map[string]any{
			"fileID":   file.ID,
			"fileType": file.Type.String(),
		})
	}

	isPlayable := false
	if !malformed && slots.ConvertedVideoURL != "" {
		isPlayable = s.prober.Probe(ctx, slots.ConvertedVideoURL)
	}

	file.MarkSourceLoaded(s.viewportFor(ctx))
	file.OriginalImageURL = slots.OriginalImageURL
	file.OriginalVideoURL = slots.OriginalVideoURL

	var retryErr error
	switch {
	case malformed && file.Type == media.Image:
		file.Payload = media.SingleImage{URL: slots.OriginalURL}
	case file.Type == media.Video:
		switch {
		case isPlayable:
			file.Payload = media.PlayableVideo{URL: slots.ConvertedVideoURL}
		case malformed && slots.OriginalVideoURL == "":
			file.Payload = media.DownloadFallback{
				PlaceholderURL: file.PlaceholderURL,
				ButtonID:       media.DownloadButtonID(file.ID),
			}
		default:
			file.Payload, retryErr = s.transcodeAndRetry(ctx, logger, file, slots.OriginalVideoURL)
		}
	case file.Type == media.LivePhoto:
		if isPlayable {
			file.Payload = media.LivePhotoComposite{
				ImageURL:       slots.ConvertedImageURL,
				VideoURL:       slots.ConvertedVideoURL,
				ImageElementID: media.LivePhotoImageID(file.ID),
				VideoElementID: media.LivePhotoVideoID(file.ID),
			}
		} else {
			file.Payload = media.DownloadFallback{
				PlaceholderURL: file.PlaceholderURL,
				ButtonID:       media.DownloadButtonID(file.ID),
			}
		}
	case file.Type == media.Image:
		file.Payload = media.SingleImage{URL: slots.ConvertedImageURL}
	default:
		s.reportUnknownType(ctx, file)
		file.Payload = media.SingleImage{URL: slots.OriginalURL}
	}

	metrics.ResolutionsTotal.WithLabelValues(file.Type.String(), string(file.Payload.Kind())).Inc()
	logger.Debug().Str("payload", string(file.Payload.Kind())).Msg("file resolved")
	return file, retryErr
}

// transcodeAndRetry converts the original video into a playable blob and
// probes it. Any failure leaves the caller with a download fallback.
func (s *Service) transcodeAndRetry(ctx context.Context, logger zerolog.Logger, file media.MediaFile, originalVideoURL string) (media.Payload, error) {
	fallback := media.DownloadFallback{
		PlaceholderURL: file.PlaceholderURL,
		DownloadURL:    originalVideoURL,
		Filename:       media.DownloadFilename(file.Title),
	}
	fail := func(stage media.RetryStage, err error) (media.Payload, error) {
		metrics.RetriesTotal.WithLabelValues("error").Inc()
		logger.Error().Err(err).Str(applog.FieldStage, string(stage)).Msg("transcode retry failed")
		return fallback, &media.RetryError{FileID: file.ID, Stage: stage, Err: err}
	}

	logger.Info().Msg("video not playable, downloading original video and converting it to playable format")

	if originalVideoURL == "" {
		return fail(media.StageFetch, media.ErrEmptyURL)
	}
	data, err := s.fetcher.Fetch(ctx, originalVideoURL)
	if err != nil {
		return fail(media.StageFetch, fmt.Errorf("fetch original video: %w", err))
	}

	detected := s.detector.Detect(data)
	s.report(ctx, errors.New("video format not supported"), "video format not supported", map[string]any{
		"fileID":   file.ID,
		"fileType": detected,
	})

	blob, err := s.transcoder.Transcode(ctx, file.Title, data)
	if err != nil {
		return fail(media.StageTranscode, fmt.Errorf("transcode %q: %w", file.Title, err))
	}
	blobURL, err := s.blobs.Create(ctx, blob)
	if err != nil {
		return fail(media.StageStore, fmt.Errorf("store transcoded video: %w", err))
	}
	logger.Info().Str(applog.FieldURL, blobURL).Msg("video converted, updating its url")

	if s.prober.Probe(ctx, blobURL) {
		metrics.RetriesTotal.WithLabelValues("playable").Inc()
		return media.PlayableVideo{URL: blobURL}, nil
	}
	metrics.RetriesTotal.WithLabelValues("unplayable").Inc()
	return fallback, nil
}

func (s *Service) viewportFor(ctx context.Context) media.Viewport {
	if v, ok := media.ViewportFromContext(ctx); ok {
		return v
	}
	return s.viewport
}

func (s *Service) reportUnknownType(ctx context.Context, file media.MediaFile) {
	s.report(ctx, fmt.Errorf("%w - %s", media.ErrUnknownFileType, file.Type), "Unknown file type", map[string]any{
		"fileID": file.ID,
	})
}

func (s *Service) report(ctx context.Context, err error, msg string, extra map[string]any) {
	if s.reporter == nil {
		return
	}
	s.reporter.Report(ctx, err, msg, extra)
}
