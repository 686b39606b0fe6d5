package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrInvalidBaseURL   = errors.New("invalid base url")
	ErrResponseTooLarge = errors.New("response body exceeds size limit")
)

// StatusError reports a response with a non-2xx status. The full response is
// kept so callers can render whatever the backend returned.
type StatusError struct {
	Method   string
	URL      string
	Response *Response
}

func (e *StatusError) Error() string {
	code := e.StatusCode()
	if code == 0 {
		return fmt.Sprintf("%s %s: no response", e.Method, e.URL)
	}
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, code, http.StatusText(code))
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.URL, code, msg)
}

// Message returns the backend's {"error": ...} message when present,
// otherwise the trimmed body text.
func (e *StatusError) Message() string {
	if e.Response == nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(e.Response.Data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(e.Response.Data))
}

// StatusCode returns the response status.
func (e *StatusError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// AsStatusError unwraps err into a *StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	ok := errors.As(err, &se)
	return se, ok
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	se, ok := AsStatusError(err)
	return ok && se.StatusCode() == http.StatusNotFound
}
