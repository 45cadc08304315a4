package media

import (
	"context"

	"photoframe/internal/domain/media"
)

// StampPlaceholder installs the low-res pass for file: a spinner over the
// preview for videos and live photos, the preview itself otherwise.
func (s *Service) StampPlaceholder(ctx context.Context, file media.MediaFile, url string) media.MediaFile {
	file.PlaceholderURL = url
	switch file.Type {
	case media.Video, media.LivePhoto:
		file.Payload = media.LoadingPlaceholder{PreviewURL: url}
	case media.Image:
		file.Payload = media.SingleImage{URL: url}
	default:
		s.reportUnknownType(ctx, file)
		file.Payload = media.SingleImage{URL: url}
	}
	return file
}
