package mws

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
)

// ErrContentMD5Mismatch is returned when a flat-file response body does not
// match the Content-MD5 header sent with it.
var ErrContentMD5Mismatch = errors.New("received Content-MD5 header does not match the calculated MD5 hash")

// APIError is an MWS <ErrorResponse>.
type APIError struct {
	StatusCode int
	Type       string // Sender or Receiver
	Code       string // e.g. InvalidParameterValue, RequestThrottled
	Message    string
	RequestID  string
	Body       string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("MWS API error (status %d): %s", e.StatusCode, truncate(e.Body, 200))
	}
	return fmt.Sprintf(
		"MWS API error (status %d): %s: %s (request %s)",
		e.StatusCode, e.Code, e.Message, e.RequestID,
	)
}

// Throttled reports whether MWS rejected the request for exceeding the
// operation's quota.
func (e *APIError) Throttled() bool {
	return e.Code == "RequestThrottled" || (e.StatusCode == http.StatusServiceUnavailable && e.Code == "")
}

type errorResponse struct {
	XMLName xml.Name `xml:"ErrorResponse"`
	Error   struct {
		Type    string `xml:"Type"`
		Code    string `xml:"Code"`
		Message string `xml:"Message"`
	} `xml:"Error"`
	RequestID string `xml:"RequestID"`
	RequestId string `xml:"RequestId"` //nolint:revive // both spellings appear in MWS responses
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Body: string(body)}

	var resp errorResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return e
	}
	e.Type = resp.Error.Type
	e.Code = resp.Error.Code
	e.Message = resp.Error.Message
	e.RequestID = resp.RequestID
	if e.RequestID == "" {
		e.RequestID = resp.RequestId
	}
	return e
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
