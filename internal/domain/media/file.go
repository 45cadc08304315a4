package media

import (
	"fmt"
	"strconv"
	"strings"
)

// FileType is the declared kind of a gallery item.
type FileType int

const (
	Image FileType = iota
	Video
	LivePhoto
	Other
)

func (t FileType) String() string {
	switch t {
	case Image:
		return "image"
	case Video:
		return "video"
	case LivePhoto:
		return "live_photo"
	case Other:
		return "other"
	default:
		return "unknown(" + strconv.Itoa(int(t)) + ")"
	}
}

// Known reports whether t is one of the declared file types.
func (t FileType) Known() bool {
	return t >= Image && t <= Other
}

// ParseFileType accepts a type name ("video", "live_photo", ...) or its
// numeric wire value. Unrecognized numbers are kept so callers can report them.
func ParseFileType(raw string) (FileType, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "image":
		return Image, nil
	case "video":
		return Video, nil
	case "live_photo", "livephoto", "live-photo":
		return LivePhoto, nil
	case "other", "others":
		return Other, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return Other, fmt.Errorf("invalid file type %q", raw)
	}
	return FileType(n), nil
}

// MediaFile is one gallery item and its renderable state.
type MediaFile struct {
	ID             int64
	Type           FileType
	Title          string
	PlaceholderURL string

	// Payload is nil until the placeholder pass or a resolution sets it.
	Payload Payload

	OriginalImageURL string
	OriginalVideoURL string

	Width  int
	Height int

	// SourceLoaded only ever goes from false to true.
	SourceLoaded bool
}

// MarkSourceLoaded stamps the viewport and flips SourceLoaded.
func (f *MediaFile) MarkSourceLoaded(v Viewport) {
	f.Width = v.Width
	f.Height = v.Height
	f.SourceLoaded = true
}
