package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	perr "streamdex/internal/platform/errors"
)

// StatusError wraps non-2xx HTTP responses from the Data API
type StatusError struct {
	Status int
	Reason string
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube status %d (%s)", e.Status, e.Reason)
	}
	return fmt.Sprintf("youtube status %d", e.Status)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// statusError reads a small body tail and classifies the response
// resp.Body is closed
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()

	se := &StatusError{Status: resp.StatusCode, Body: string(body)}
	var ae apiErrorBody
	if json.Unmarshal(body, &ae) == nil && len(ae.Error.Errors) > 0 {
		se.Reason = ae.Error.Errors[0].Reason
	}
	return perr.Wrap(se, codeFor(se), "youtube request rejected")
}

func codeFor(se *StatusError) perr.ErrorCode {
	switch {
	case se.Status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case se.Status == http.StatusTooManyRequests,
		se.Status == http.StatusForbidden && (se.Reason == "quotaExceeded" || se.Reason == "rateLimitExceeded"):
		return perr.ErrorCodeTooManyRequests
	case se.Status == http.StatusForbidden:
		return perr.ErrorCodeForbidden
	case se.Status == http.StatusBadRequest:
		return perr.ErrorCodeInvalidArgument
	case se.Status >= 500:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

// retryAfter parses a Retry-After header in seconds
func retryAfter(h http.Header) time.Duration {
	s := h.Get("Retry-After")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// IsRateLimited reports whether err is a quota or rate limit rejection
func IsRateLimited(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return codeFor(se) == perr.ErrorCodeTooManyRequests
	}
	return false
}

// IsTransient reports whether err is a 5xx from the Data API
func IsTransient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return false
}

// chunk splits ids into batches of at most n
func chunk(ids []string, n int) [][]string {
	var out [][]string
	for len(ids) > n {
		out = append(out, ids[:n:n])
		ids = ids[n:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
