package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// StatusCoder is implemented by errors that carry an HTTP status code from a
// remote service.
type StatusCoder interface {
	StatusCode() int
}

// transientMarkers are substrings of error messages that indicate a
// transport-level failure worth retrying.
var transientMarkers = []string{ //nolint: gochecknoglobals
	"timeout",
	"network",
	"connection refused",
	"econnrefused",
	"fetch failed",
	"aborted",
}

// StatusCode returns the first HTTP status code found in err's chain.
func StatusCode(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}

	return 0, false
}

// IsRetryable reports whether err is transient. Client-observed timeouts and
// aborts, transport failures, 5xx and 429 responses are retryable. Any other
// error, including other 4xx responses, is not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	if code, ok := StatusCode(err); ok {
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}

	return false
}
