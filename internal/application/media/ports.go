package media

import (
	"context"
)

// Prober reports whether a video URL can begin playback.
type Prober interface {
	Probe(ctx context.Context, url string) bool
}

// Fetcher downloads the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TypeInfo describes sniffed file content.
type TypeInfo struct {
	MIME      string
	Extension string
}

// TypeDetector classifies raw file content.
type TypeDetector interface {
	Detect(data []byte) TypeInfo
}

// Blob is a transcoded media payload.
type Blob struct {
	Data        []byte
	ContentType string
}

// Transcoder converts raw video bytes into a playable encoding. The title
// is the original file name and hints at the input container.
type Transcoder interface {
	Transcode(ctx context.Context, title string, data []byte) (Blob, error)
}

// BlobStore keeps transcoded blobs and hands out local URLs for them.
// Ownership of the stored blob passes to the caller of Resolve.
type BlobStore interface {
	Create(ctx context.Context, blob Blob) (string, error)
}

// ErrorReporter is a fire-and-forget diagnostic sink.
type ErrorReporter interface {
	Report(ctx context.Context, err error, msg string, extra map[string]any)
}
