package net

import (
	"net/http"

	perr "streamdex/internal/platform/errors"
)

// Wire is the envelope every api response is wrapped in
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a success envelope; a zero status means 200
func Reply(status int, data any, reqID string) (int, Wire) {
	if status == 0 {
		status = http.StatusOK
	}
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		Data:       data,
	}
}

// Error builds the envelope for err with its mapped status; nil is a plain 200
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return Reply(http.StatusOK, nil, reqID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
