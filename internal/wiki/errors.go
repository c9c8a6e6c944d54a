package wiki

import (
	"errors"
	"fmt"
)

// SourceUnavailableError reports a failed outbound call to the source corpus:
// transport failure, non-2xx status, or a malformed payload.
type SourceUnavailableError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *SourceUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("source unavailable: %s returned HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("source unavailable: %s: %v", e.Endpoint, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// IsSourceUnavailable reports whether err is a source availability failure.
func IsSourceUnavailable(err error) bool {
	var se *SourceUnavailableError
	return errors.As(err, &se)
}
