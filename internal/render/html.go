// Package render turns resolved payloads into gallery markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"photoframe/internal/domain/media"
)

// Localizer resolves user-facing text by key.
type Localizer interface {
	T(key string) string
}

const (
	keyPlaybackFailed = "VIDEO_PLAYBACK_FAILED_DOWNLOAD_INSTEAD"
	keyDownload       = "DOWNLOAD"
	keyLoading        = "LOADING"
	keyNoVideoTag     = "VIDEO_TAG_NOT_SUPPORTED"
)

var templates = template.Must(template.New("payloads").Funcs(template.FuncMap{
	"safeURL": safeURL,
}).Parse(`
{{- define "single_image" -}}
<img src="{{safeURL .P.URL}}" oncontextmenu="return false;"/>
{{- end -}}

{{- define "playable_video" -}}
<video controls oncontextmenu="return false;">
    <source src="{{safeURL .P.URL}}" />
    {{.T.NoVideoTag}}
</video>
{{- end -}}

{{- define "live_photo" -}}
<div class="pswp-item-container">
    <img id="{{.P.ImageElementID}}" src="{{safeURL .P.ImageURL}}" oncontextmenu="return false;"/>
    <video id="{{.P.VideoElementID}}" loop muted oncontextmenu="return false;">
        <source src="{{safeURL .P.VideoURL}}" />
        {{.T.NoVideoTag}}
    </video>
</div>
{{- end -}}

{{- define "download_fallback" -}}
<div class="pswp-item-container">
    <img src="{{safeURL .P.PlaceholderURL}}" oncontextmenu="return false;"/>
    <div class="download-banner">
        {{.T.PlaybackFailed}}
        {{- if .P.DownloadURL}}
        <a class="btn btn-outline-success" href="{{safeURL .P.DownloadURL}}" download="{{.P.Filename}}">{{.T.Download}}</a>
        {{- else}}
        <button class="btn btn-outline-success" id="{{.P.ButtonID}}">{{.T.Download}}</button>
        {{- end}}
    </div>
</div>
{{- end -}}

{{- define "loading_placeholder" -}}
<div class="pswp-item-container">
    <img src="{{safeURL .P.PreviewURL}}" oncontextmenu="return false;"/>
    <div class="spinner-border text-light" role="status">
        <span class="sr-only">{{.T.Loading}}</span>
    </div>
</div>
{{- end -}}
`))

type texts struct {
	PlaybackFailed string
	Download       string
	Loading        string
	NoVideoTag     string
}

type view struct {
	P any
	T texts
}

// Renderer produces escaped HTML for payloads.
type Renderer struct {
	texts texts
}

// NewRenderer creates a renderer that pulls banner text from loc.
func NewRenderer(loc Localizer) *Renderer {
	return &Renderer{texts: texts{
		PlaybackFailed: loc.T(keyPlaybackFailed),
		Download:       loc.T(keyDownload),
		Loading:        loc.T(keyLoading),
		NoVideoTag:     loc.T(keyNoVideoTag),
	}}
}

// Render returns the markup for payload. A nil payload renders as empty.
func (r *Renderer) Render(payload media.Payload) (string, error) {
	if payload == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(payload.Kind()), view{P: payload, T: r.texts}); err != nil {
		return "", fmt.Errorf("render %s: %w", payload.Kind(), err)
	}
	return buf.String(), nil
}

var allowedSchemes = map[string]bool{
	"":      true,
	"http":  true,
	"https": true,
	"blob":  true,
}

// safeURL admits relative, http(s) and blob URLs; anything else is neutralised.
func safeURL(raw string) template.URL {
	value := strings.TrimSpace(raw)
	parsed, err := url.Parse(value)
	if err != nil || !allowedSchemes[strings.ToLower(parsed.Scheme)] {
		return template.URL("about:invalid")
	}
	return template.URL(value)
}
