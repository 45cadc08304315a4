package media

import (
	"errors"
	"path"
	"strings"
)

var allowedVideoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".m4v":  true,
	".webm": true,
	".3gp":  true,
	".hevc": true,
}

// IsSupportedVideoExt reports whether extension is a known video container.
func IsSupportedVideoExt(ext string) bool {
	return allowedVideoExts[strings.ToLower(strings.TrimSpace(ext))]
}

// DownloadFilename turns a file title into a safe suggested download name.
func DownloadFilename(title string) string {
	value := strings.TrimSpace(title)
	value = strings.ReplaceAll(value, "\\", "/")
	value = path.Base(path.Clean("/" + value))
	if value == "" || value == "/" || value == "." {
		return "download"
	}
	return value
}

// NormalizeBlobID validates a blob identifier taken from a request path.
func NormalizeBlobID(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, BlobScheme)
	if value == "" || strings.ContainsAny(value, `/\.`) {
		return "", errors.New("invalid blob id")
	}
	return value, nil
}

// BlobScheme prefixes local blob URLs handed out for transcoded videos.
const BlobScheme = "blob:"
