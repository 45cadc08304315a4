package http

import (
	"fmt"

	"photoframe/internal/domain/media"
)

type fileDTO struct {
	ID               int64       `json:"id"`
	FileType         int         `json:"fileType"`
	Title            string      `json:"title"`
	Msrc             string      `json:"msrc,omitempty"`
	Payload          *payloadDTO `json:"payload,omitempty"`
	OriginalImageURL string      `json:"originalImageURL,omitempty"`
	OriginalVideoURL string      `json:"originalVideoURL,omitempty"`
	W                int         `json:"w,omitempty"`
	H                int         `json:"h,omitempty"`
	IsSourceLoaded   bool        `json:"isSourceLoaded"`
}

type payloadDTO struct {
	Kind media.PayloadKind `json:"kind"`
	Data interface{}       `json:"data"`
}

type bundleDTO struct {
	Original  string `json:"original"`
	Converted string `json:"converted"`
}

type viewportDTO struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type resolveRequest struct {
	File     fileDTO      `json:"file"`
	Bundle   bundleDTO    `json:"bundle"`
	Viewport *viewportDTO `json:"viewport,omitempty"`
}

type batchRequest struct {
	Items    []resolveRequest `json:"items"`
	Viewport *viewportDTO     `json:"viewport,omitempty"`
}

type placeholderRequest struct {
	File fileDTO `json:"file"`
	URL  string  `json:"url"`
}

type fileResponse struct {
	File  fileDTO `json:"file"`
	HTML  string  `json:"html"`
	Error string  `json:"error,omitempty"`
}

func (d fileDTO) toDomain() media.MediaFile {
	return media.MediaFile{
		ID:             d.ID,
		Type:           media.FileType(d.FileType),
		Title:          d.Title,
		PlaceholderURL: d.Msrc,
	}
}

func (d bundleDTO) toDomain() media.SourceURLBundle {
	return media.SourceURLBundle{Original: d.Original, Converted: d.Converted}
}

func (d *viewportDTO) toDomain() (media.Viewport, bool) {
	if d == nil || d.Width <= 0 || d.Height <= 0 {
		return media.Viewport{}, false
	}
	return media.Viewport{Width: d.Width, Height: d.Height}, true
}

func fromDomain(f media.MediaFile) fileDTO {
	out := fileDTO{
		ID:               f.ID,
		FileType:         int(f.Type),
		Title:            f.Title,
		Msrc:             f.PlaceholderURL,
		OriginalImageURL: f.OriginalImageURL,
		OriginalVideoURL: f.OriginalVideoURL,
		W:                f.Width,
		H:                f.Height,
		IsSourceLoaded:   f.SourceLoaded,
	}
	if f.Payload != nil {
		out.Payload = &payloadDTO{Kind: f.Payload.Kind(), Data: f.Payload}
	}
	return out
}

func (r resolveRequest) validate() error {
	if r.File.ID == 0 {
		return fmt.Errorf("file.id is required")
	}
	return nil
}
