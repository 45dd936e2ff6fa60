package engine

import (
	"fmt"
	"strings"
)

// StatusError is returned when the engine answers with a non-2xx status. Its
// message is the response body verbatim so it can be shown to users as the
// failure cause.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}

	return fmt.Sprintf("engine responded with status %d", e.Code)
}

// StatusCode exposes the HTTP status for retry classification.
func (e *StatusError) StatusCode() int { return e.Code }
