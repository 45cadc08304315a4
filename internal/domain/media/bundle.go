package media

import (
	"fmt"
	"strings"
)

// SourceURLBundle carries the candidate URLs for one file. Each field is a
// comma-joined list; live photos list the image first, then the video.
type SourceURLBundle struct {
	Original  string
	Converted string
}

// Slots holds the positional URLs parsed out of a bundle.
type Slots struct {
	OriginalImageURL  string
	OriginalVideoURL  string
	ConvertedImageURL string
	ConvertedVideoURL string
	OriginalURL       string
}

// Arity is the number of URLs a bundle must carry for the given type.
func Arity(t FileType) int {
	if t == LivePhoto {
		return 2
	}
	return 1
}

// ParseSlots splits a bundle into slots for t. Unknown types only use the
// first original URL. A count mismatch returns ErrMalformedBundle together
// with the slots that could still be filled.
func ParseSlots(t FileType, bundle SourceURLBundle) (Slots, error) {
	original := splitURLs(bundle.Original)
	converted := splitURLs(bundle.Converted)

	var slots Slots
	switch t {
	case LivePhoto:
		slots.OriginalImageURL, slots.OriginalVideoURL = at(original, 0), at(original, 1)
		slots.ConvertedImageURL, slots.ConvertedVideoURL = at(converted, 0), at(converted, 1)
	case Video:
		slots.OriginalVideoURL = at(original, 0)
		slots.ConvertedVideoURL = at(converted, 0)
	case Image:
		slots.OriginalImageURL = at(original, 0)
		slots.ConvertedImageURL = at(converted, 0)
	default:
		slots.OriginalURL = at(original, 0)
		return slots, nil
	}
	slots.OriginalURL = at(original, 0)

	want := Arity(t)
	if len(original) != want || len(converted) != want {
		return slots, fmt.Errorf("%w: %s wants %d url(s), got original=%d converted=%d",
			ErrMalformedBundle, t, want, len(original), len(converted))
	}
	return slots, nil
}

func splitURLs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
