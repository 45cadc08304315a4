package media

import "strconv"

// PayloadKind names the variant carried by a Payload.
type PayloadKind string

const (
	KindSingleImage        PayloadKind = "single_image"
	KindPlayableVideo      PayloadKind = "playable_video"
	KindLivePhotoComposite PayloadKind = "live_photo"
	KindDownloadFallback   PayloadKind = "download_fallback"
	KindLoadingPlaceholder PayloadKind = "loading_placeholder"
)

// Payload is the resolved visual representation of a file. The set of
// implementations is closed to this package.
type Payload interface {
	Kind() PayloadKind
	isPayload()
}

// SingleImage renders a plain image.
type SingleImage struct {
	URL string `json:"url"`
}

// PlayableVideo renders a video element with controls.
type PlayableVideo struct {
	URL string `json:"url"`
}

// LivePhotoComposite overlays a muted looping video on its still image.
// The element ids are what the play/pause controller looks up.
type LivePhotoComposite struct {
	ImageURL       string `json:"imageUrl"`
	VideoURL       string `json:"videoUrl"`
	ImageElementID string `json:"imageElementId"`
	VideoElementID string `json:"videoElementId"`
}

// DownloadFallback shows the placeholder with a manual download banner.
// Exactly one of DownloadURL or ButtonID is set.
type DownloadFallback struct {
	PlaceholderURL string `json:"placeholderUrl"`
	DownloadURL    string `json:"downloadUrl,omitempty"`
	Filename       string `json:"filename,omitempty"`
	ButtonID       string `json:"buttonId,omitempty"`
}

// LoadingPlaceholder shows a low-res preview with a spinner.
type LoadingPlaceholder struct {
	PreviewURL string `json:"previewUrl"`
}

func (SingleImage) Kind() PayloadKind        { return KindSingleImage }
func (PlayableVideo) Kind() PayloadKind      { return KindPlayableVideo }
func (LivePhotoComposite) Kind() PayloadKind { return KindLivePhotoComposite }
func (DownloadFallback) Kind() PayloadKind   { return KindDownloadFallback }
func (LoadingPlaceholder) Kind() PayloadKind { return KindLoadingPlaceholder }

func (SingleImage) isPayload()        {}
func (PlayableVideo) isPayload()      {}
func (LivePhotoComposite) isPayload() {}
func (DownloadFallback) isPayload()   {}
func (LoadingPlaceholder) isPayload() {}

// LivePhotoImageID is the element id of a live photo's still image.
func LivePhotoImageID(id int64) string {
	return "live-photo-image-" + strconv.FormatInt(id, 10)
}

// LivePhotoVideoID is the element id of a live photo's video.
func LivePhotoVideoID(id int64) string {
	return "live-photo-video-" + strconv.FormatInt(id, 10)
}

// DownloadButtonID is the element id of a live photo's download button.
func DownloadButtonID(id int64) string {
	return "download-btn-" + strconv.FormatInt(id, 10)
}
