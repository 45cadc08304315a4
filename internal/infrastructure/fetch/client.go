package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"photoframe/internal/domain/media"
)

// BlobReader reads blobs created by the local blob store.
type BlobReader interface {
	ReadURL(url string) ([]byte, error)
}

// Client downloads original media over HTTP(S) or from the blob store.
type Client struct {
	HTTP     *http.Client
	MaxBytes int64
	blobs    BlobReader
}

// NewClient creates a fetch adapter. maxBytes <= 0 disables the size cap.
func NewClient(timeout time.Duration, maxBytes int64, blobs BlobReader) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		HTTP:     &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
		blobs:    blobs,
	}
}

// Fetch returns the bytes behind url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, media.ErrEmptyURL
	}
	if strings.HasPrefix(url, media.BlobScheme) {
		if c.blobs == nil {
			return nil, fmt.Errorf("no blob store for %s", url)
		}
		return c.blobs.ReadURL(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var body io.Reader = resp.Body
	if c.MaxBytes > 0 {
		if resp.ContentLength > c.MaxBytes {
			return nil, fmt.Errorf("fetch %s: %d bytes exceeds limit %d", url, resp.ContentLength, c.MaxBytes)
		}
		body = io.LimitReader(resp.Body, c.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if c.MaxBytes > 0 && int64(len(data)) > c.MaxBytes {
		return nil, fmt.Errorf("fetch %s: body exceeds limit %d", url, c.MaxBytes)
	}
	return data, nil
}
