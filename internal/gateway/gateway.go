// Package gateway talks to the community backend over its REST API.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Error is a failed backend call. Status is 0 when no HTTP response was received.
// Synthesized is set when the response carried no readable message and
// Message was derived from the status code.
type Error struct {
	Status      int
	Message     string
	Synthesized bool
	Err         error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusAndMessage extracts the HTTP status and server message from err.
// Errors that are not *Error report status 0 and their own text.
func StatusAndMessage(err error) (int, string) {
	if err == nil {
		return 0, ""
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status, gwErr.Message
	}
	return 0, err.Error()
}

// ServerMessage is StatusAndMessage without synthesized text: the message is
// empty unless the server actually sent one.
func ServerMessage(err error) (int, string) {
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Synthesized {
		return gwErr.Status, ""
	}
	return StatusAndMessage(err)
}

// Message returns the server-provided message of err, or its text.
func Message(err error) string {
	_, msg := StatusAndMessage(err)
	return msg
}

// errorMessagePaths are the places the different backend endpoints put their
// human readable error text.
var errorMessagePaths = []string{
	"message",
	"error.message",
	"error",
	"errors.0.message",
	"errors.0",
	"detail",
	"msg",
}

const maxPlainErrorLength = 200

// newResponseError builds an Error from a non-2xx response body.
func newResponseError(status int, body []byte) *Error {
	if msg := extractMessage(body); msg != "" {
		return &Error{Status: status, Message: msg}
	}
	return &Error{Status: status, Message: statusMessage(status), Synthesized: true}
}

// extractMessage returns the error text of body, or "" when body has none.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || strings.HasPrefix(trimmed, "<") {
		return ""
	}
	if gjson.Valid(trimmed) {
		for _, path := range errorMessagePaths {
			res := gjson.Get(trimmed, path)
			if res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
				return strings.TrimSpace(res.Str)
			}
		}
		return ""
	}
	return truncate(trimmed, maxPlainErrorLength)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}
