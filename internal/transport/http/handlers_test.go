package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appmedia "photoframe/internal/application/media"
	"photoframe/internal/domain/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMedia struct {
	resolveErr   error
	lastViewport media.Viewport
	lastBundle   media.SourceURLBundle
	batchSize    int
}

func (s *stubMedia) Resolve(ctx context.Context, file media.MediaFile, bundle media.SourceURLBundle) (media.MediaFile, error) {
	s.lastViewport, _ = media.ViewportFromContext(ctx)
	s.lastBundle = bundle
	file.Payload = media.SingleImage{URL: bundle.Original}
	if s.resolveErr != nil {
		file.Payload = media.DownloadFallback{DownloadURL: bundle.Original, Filename: "clip.mov"}
	}
	return file, s.resolveErr
}

func (s *stubMedia) ResolveAll(ctx context.Context, items []appmedia.Item) []appmedia.Result {
	s.batchSize = len(items)
	out := make([]appmedia.Result, len(items))
	for i, item := range items {
		file, err := s.Resolve(ctx, item.File, item.Bundle)
		out[i] = appmedia.Result{File: file, Err: err}
	}
	return out
}

func (s *stubMedia) StampPlaceholder(_ context.Context, file media.MediaFile, url string) media.MediaFile {
	file.PlaceholderURL = url
	file.Payload = media.LoadingPlaceholder{PreviewURL: url}
	return file
}

type stubProber struct{ playable bool }

func (s stubProber) Probe(context.Context, string) bool { return s.playable }

type stubRenderer struct{}

func (stubRenderer) Render(p media.Payload) (string, error) {
	if p == nil {
		return "", nil
	}
	return "<" + string(p.Kind()) + ">", nil
}

type stubBlobs struct{ path string }

func (s stubBlobs) Open(raw string) (string, error) {
	if s.path == "" || raw != "abc" {
		return "", os.ErrNotExist
	}
	return s.path, nil
}

func newTestRouter(m *stubMedia, blobs stubBlobs) http.Handler {
	return NewRouter(NewHandler(m, stubProber{playable: true}, stubRenderer{}, blobs))
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResolveFile_ReturnsPayloadAndMarkup(t *testing.T) {
	m := &stubMedia{}
	rec := doJSON(t, newTestRouter(m, stubBlobs{}), http.MethodPost, "/api/files/resolve",
		`{"file":{"id":7,"fileType":0,"title":"beach.jpg"},"bundle":{"original":"https://x/beach.jpg"},"viewport":{"width":390,"height":844}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.File.ID)
	require.NotNil(t, resp.File.Payload)
	assert.Equal(t, media.KindSingleImage, resp.File.Payload.Kind)
	assert.Equal(t, "<single_image>", resp.HTML)
	assert.Empty(t, resp.Error)
	assert.Equal(t, media.Viewport{Width: 390, Height: 844}, m.lastViewport)
}

func TestResolveFile_RetryFailureIsBadGateway(t *testing.T) {
	m := &stubMedia{resolveErr: &media.RetryError{FileID: 3, Stage: media.StageTranscode, Err: errors.New("exit 1")}}
	rec := doJSON(t, newTestRouter(m, stubBlobs{}), http.MethodPost, "/api/files/resolve",
		`{"file":{"id":3,"fileType":1,"title":"clip.mov"},"bundle":{"original":"https://x/clip.mov"}}`)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "transcode")
	assert.Equal(t, "<download_fallback>", resp.HTML)
}

func TestResolveFile_RejectsMissingID(t *testing.T) {
	rec := doJSON(t, newTestRouter(&stubMedia{}, stubBlobs{}), http.MethodPost, "/api/files/resolve",
		`{"file":{"fileType":0},"bundle":{"original":"a"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, newTestRouter(&stubMedia{}, stubBlobs{}), http.MethodPost, "/api/files/resolve", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveBatch_PreservesOrder(t *testing.T) {
	m := &stubMedia{}
	rec := doJSON(t, newTestRouter(m, stubBlobs{}), http.MethodPost, "/api/files/resolve-batch",
		`{"items":[{"file":{"id":1},"bundle":{"original":"a"}},{"file":{"id":2},"bundle":{"original":"b"}}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Results []fileResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.Equal(t, int64(1), body.Results[0].File.ID)
	assert.Equal(t, int64(2), body.Results[1].File.ID)
	assert.Equal(t, 2, m.batchSize)
}

func TestResolveBatch_RejectsInvalidItem(t *testing.T) {
	rec := doJSON(t, newTestRouter(&stubMedia{}, stubBlobs{}), http.MethodPost, "/api/files/resolve-batch",
		`{"items":[{"file":{"id":1}},{"file":{}}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "items[1]")
}

func TestStampPlaceholder(t *testing.T) {
	router := newTestRouter(&stubMedia{}, stubBlobs{})
	rec := doJSON(t, router, http.MethodPost, "/api/files/placeholder",
		`{"file":{"id":9,"fileType":1},"url":"https://x/thumb.jpg"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp fileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://x/thumb.jpg", resp.File.Msrc)
	assert.Equal(t, "<loading_placeholder>", resp.HTML)

	rec = doJSON(t, router, http.MethodPost, "/api/files/placeholder", `{"file":{"id":9},"url":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProbe(t *testing.T) {
	router := newTestRouter(&stubMedia{}, stubBlobs{})

	rec := doJSON(t, router, http.MethodGet, "/api/probe?url=https%3A%2F%2Fx%2Fa.mp4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://x/a.mp4","playable":true}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/probe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.mp4")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o644))
	router := newTestRouter(&stubMedia{}, stubBlobs{path: path})

	rec := doJSON(t, router, http.MethodGet, "/blobs/abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	assert.Equal(t, "0123456789", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/blobs/abc", nil)
	req.Header.Set("Range", "bytes=2-4")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "234", rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/blobs/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "video/mp4", contentTypeFor("/x/a.MP4"))
	assert.Equal(t, "application/octet-stream", contentTypeFor("/x/a"))
}
