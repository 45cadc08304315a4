package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	appmedia "photoframe/internal/application/media"
	"photoframe/internal/domain/media"
	applog "photoframe/internal/log"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const maxRequestBytes = 1 << 20

type mediaUseCases interface {
	Resolve(ctx context.Context, file media.MediaFile, bundle media.SourceURLBundle) (media.MediaFile, error)
	ResolveAll(ctx context.Context, items []appmedia.Item) []appmedia.Result
	StampPlaceholder(ctx context.Context, file media.MediaFile, url string) media.MediaFile
}

type prober interface {
	Probe(ctx context.Context, url string) bool
}

type renderer interface {
	Render(payload media.Payload) (string, error)
}

type blobPathStore interface {
	Open(raw string) (string, error)
}

// Handler serves the resolver over HTTP.
type Handler struct {
	media    mediaUseCases
	prober   prober
	renderer renderer
	blobs    blobPathStore
	logger   zerolog.Logger
}

// NewHandler wires HTTP handlers with application use cases.
func NewHandler(mediaService mediaUseCases, prober prober, renderer renderer, blobs blobPathStore) *Handler {
	return &Handler{
		media:    mediaService,
		prober:   prober,
		renderer: renderer,
		blobs:    blobs,
		logger:   applog.WithComponent("http"),
	}
}

// ResolveFile handles POST /api/files/resolve.
func (h *Handler) ResolveFile(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := withViewport(r.Context(), req.Viewport)
	file, err := h.media.Resolve(ctx, req.File.toDomain(), req.Bundle.toDomain())
	resp := h.fileResponse(file, err)

	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, resp)
}

// ResolveBatch handles POST /api/files/resolve-batch.
func (h *Handler) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]appmedia.Item, 0, len(req.Items))
	for i, item := range req.Items {
		if err := item.validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("items[%d]: %w", i, err))
			return
		}
		items = append(items, appmedia.Item{File: item.File.toDomain(), Bundle: item.Bundle.toDomain()})
	}

	results := h.media.ResolveAll(withViewport(r.Context(), req.Viewport), items)
	out := make([]fileResponse, 0, len(results))
	for _, res := range results {
		out = append(out, h.fileResponse(res.File, res.Err))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": out})
}

// StampPlaceholder handles POST /api/files/placeholder.
func (h *Handler) StampPlaceholder(w http.ResponseWriter, r *http.Request) {
	var req placeholderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}

	file := h.media.StampPlaceholder(r.Context(), req.File.toDomain(), req.URL)
	writeJSON(w, http.StatusOK, h.fileResponse(file, nil))
}

// Probe handles GET /api/probe?url=...
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if strings.TrimSpace(url) == "" {
		writeError(w, http.StatusBadRequest, media.ErrEmptyURL)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":      url,
		"playable": h.prober.Probe(r.Context(), url),
	})
}

// ServeBlob handles GET /blobs/{id}.
func (h *Handler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	full, err := h.blobs.Open(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.Error(w, "Blob not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	streamFile(w, r, full, contentTypeFor(full))
}

func (h *Handler) fileResponse(file media.MediaFile, resolveErr error) fileResponse {
	resp := fileResponse{File: fromDomain(file)}
	if resolveErr != nil {
		resp.Error = resolveErr.Error()
		h.logger.Warn().Err(resolveErr).Int64(applog.FieldFileID, file.ID).Msg("resolution degraded to download fallback")
	}
	html, err := h.renderer.Render(file.Payload)
	if err != nil {
		h.logger.Error().Err(err).Int64(applog.FieldFileID, file.ID).Msg("render failed")
		return resp
	}
	resp.HTML = html
	return resp
}

func withViewport(ctx context.Context, v *viewportDTO) context.Context {
	if vp, ok := v.toDomain(); ok {
		return media.ContextWithViewport(ctx, vp)
	}
	return ctx
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
