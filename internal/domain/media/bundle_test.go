package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     FileType
		bundle  SourceURLBundle
		want    Slots
		wantErr error
	}{
		{
			name:   "live photo splits image then video",
			typ:    LivePhoto,
			bundle: SourceURLBundle{Original: "oi,ov", Converted: "ci,cv"},
			want: Slots{
				OriginalImageURL:  "oi",
				OriginalVideoURL:  "ov",
				ConvertedImageURL: "ci",
				ConvertedVideoURL: "cv",
				OriginalURL:       "oi",
			},
		},
		{
			name:   "video",
			typ:    Video,
			bundle: SourceURLBundle{Original: "o1", Converted: "c1"},
			want:   Slots{OriginalVideoURL: "o1", ConvertedVideoURL: "c1", OriginalURL: "o1"},
		},
		{
			name:   "image",
			typ:    Image,
			bundle: SourceURLBundle{Original: "o1", Converted: "c1"},
			want:   Slots{OriginalImageURL: "o1", ConvertedImageURL: "c1", OriginalURL: "o1"},
		},
		{
			name:   "other ignores converted",
			typ:    Other,
			bundle: SourceURLBundle{Original: "o1", Converted: "c1,c2"},
			want:   Slots{OriginalURL: "o1"},
		},
		{
			name:   "unknown numeric type behaves like other",
			typ:    FileType(9),
			bundle: SourceURLBundle{Original: "o1"},
			want:   Slots{OriginalURL: "o1"},
		},
		{
			name:    "live photo with a single url is malformed",
			typ:     LivePhoto,
			bundle:  SourceURLBundle{Original: "oi", Converted: "ci"},
			want:    Slots{OriginalImageURL: "oi", ConvertedImageURL: "ci", OriginalURL: "oi"},
			wantErr: ErrMalformedBundle,
		},
		{
			name:    "video with a pair is malformed",
			typ:     Video,
			bundle:  SourceURLBundle{Original: "a,b", Converted: "c"},
			want:    Slots{OriginalVideoURL: "a", ConvertedVideoURL: "c", OriginalURL: "a"},
			wantErr: ErrMalformedBundle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSlots(tt.typ, tt.bundle)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileType(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]FileType{
		"image":      Image,
		"VIDEO":      Video,
		"live_photo": LivePhoto,
		"2":          LivePhoto,
		"others":     Other,
		"7":          FileType(7),
	} {
		got, err := ParseFileType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseFileType("gif")
	assert.Error(t, err)
	assert.False(t, FileType(7).Known())
	assert.Equal(t, "unknown(7)", FileType(7).String())
}

func TestElementIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "live-photo-image-42", LivePhotoImageID(42))
	assert.Equal(t, "live-photo-video-42", LivePhotoVideoID(42))
	assert.Equal(t, "download-btn-42", DownloadButtonID(42))
}

func TestDownloadFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "clip.mov", DownloadFilename("clip.mov"))
	assert.Equal(t, "passwd", DownloadFilename("../../etc/passwd"))
	assert.Equal(t, "download", DownloadFilename("  "))
}

func TestNormalizeBlobID(t *testing.T) {
	t.Parallel()

	id, err := NormalizeBlobID("blob:abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	_, err = NormalizeBlobID("../x")
	assert.Error(t, err)
	_, err = NormalizeBlobID("")
	assert.Error(t, err)
}

func TestParseSlots_SplitsOnCommas(t *testing.T) {
	slots, err := ParseSlots(LivePhoto, SourceURLBundle{Original: "a.jpg, b.mov", Converted: "c.jpg,d.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", slots.OriginalImageURL)
	assert.Equal(t, "b.mov", slots.OriginalVideoURL)
	assert.Equal(t, "d.mp4", slots.ConvertedVideoURL)
}
