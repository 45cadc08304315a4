// Package detect sniffs media content for diagnostics.
package detect

import (
	appmedia "photoframe/internal/application/media"

	"github.com/gabriel-vasile/mimetype"
)

// Detector classifies raw bytes by magic numbers.
type Detector struct{}

// NewDetector creates a content sniffer.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the MIME type and canonical extension of data.
func (d *Detector) Detect(data []byte) appmedia.TypeInfo {
	mtype := mimetype.Detect(data)
	return appmedia.TypeInfo{MIME: mtype.String(), Extension: mtype.Extension()}
}
