package errors

import (
	"net/http"
	"strings"
)

// FailureKind is the closed set of application-submission failure classes.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureDuplicate
	FailureUnauthorized
	FailureNotFound
)

// String returns the string representation of the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureDuplicate:
		return "duplicate"
	case FailureUnauthorized:
		return "unauthorized"
	case FailureNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

const (
	MsgUnauthorized = "authentication required"
	MsgNotFound     = "slot not found"
	MsgSubmitFailed = "failed to submit application"
)

// alreadyAppliedMarkers are substrings the backend uses to report a repeated application.
var alreadyAppliedMarkers = []string{
	"이미 신청",
	"이미 지원",
	"already applied",
	"already registered",
}

// genericServerErrors are the opaque messages some endpoints return for a
// duplicate-row constraint violation.
var genericServerErrors = map[string]bool{
	"서버 오류가 발생했습니다":              true,
	"서버 오류":                      true,
	"서버 내부 오류":                   true,
	"internal server error":      true,
	"server error":               true,
	"an internal error occurred": true,
}

// Classify maps a failed submission (HTTP status, server message) to a FailureKind.
// A status of 0 means the status is unknown.
//
// The generic server-error fallback only fires when nothing more specific
// matched: it masks real 500s whose body is the bare generic message.
func Classify(status int, message string) FailureKind {
	switch status {
	case http.StatusUnauthorized:
		return FailureUnauthorized
	case http.StatusNotFound:
		return FailureNotFound
	case http.StatusConflict:
		return FailureDuplicate
	}

	if (status == 0 || status == http.StatusBadRequest) && hasAlreadyAppliedMarker(message) {
		return FailureDuplicate
	}

	if (status == 0 || status == http.StatusInternalServerError) && isGenericServerError(message) {
		return FailureDuplicate
	}

	return FailureUnknown
}

// UserMessage returns the message shown for a non-duplicate failure.
func UserMessage(kind FailureKind, serverMessage string) string {
	switch kind {
	case FailureUnauthorized:
		return MsgUnauthorized
	case FailureNotFound:
		return MsgNotFound
	}
	if msg := strings.TrimSpace(serverMessage); msg != "" {
		return msg
	}
	return MsgSubmitFailed
}

func hasAlreadyAppliedMarker(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range alreadyAppliedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func isGenericServerError(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, ".! ")
	return genericServerErrors[normalized]
}
