package media

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFileType = errors.New("unknown file type")
	ErrMalformedBundle = errors.New("malformed source url bundle")
	ErrEmptyURL        = errors.New("empty url")
)

// RetryStage identifies which Transcode-and-Retry step failed.
type RetryStage string

const (
	StageFetch     RetryStage = "fetch"
	StageTranscode RetryStage = "transcode"
	StageStore     RetryStage = "store"
)

// RetryError reports a failed Transcode-and-Retry attempt. The file it
// belongs to has already been given a download fallback.
type RetryError struct {
	FileID int64
	Stage  RetryStage
	Err    error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("file %d: transcode retry failed at %s: %v", e.FileID, e.Stage, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}
