package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    FailureKind
	}{
		{"400 with already-applied marker", 400, "이미 신청한 활동입니다", FailureDuplicate},
		{"409 conflict", 409, "conflict", FailureDuplicate},
		{"500 bare generic server error", 500, "서버 오류가 발생했습니다", FailureDuplicate},
		{"401 unauthorized", 401, "", FailureUnauthorized},
		{"404 not found", 404, "", FailureNotFound},
		{"401 wins over marker", 401, "이미 신청한 활동입니다", FailureUnauthorized},
		{"404 wins over generic 500 text", 404, "서버 오류가 발생했습니다", FailureNotFound},
		{"english marker", 400, "You have already applied to this slot", FailureDuplicate},
		{"marker with unknown status", 0, "이미 신청한 아카데미입니다", FailureDuplicate},
		{"400 without marker", 400, "invalid slot id", FailureUnknown},
		{"500 with detail is not duplicate", 500, "서버 오류가 발생했습니다: connection refused", FailureUnknown},
		{"500 generic english", 500, "Internal Server Error", FailureDuplicate},
		{"500 generic trailing punctuation", 500, "Server error.", FailureDuplicate},
		{"502 generic text", 502, "서버 오류가 발생했습니다", FailureUnknown},
		{"403 forbidden", 403, "forbidden", FailureUnknown},
		{"marker on 500 is not a 400 rule", 500, "이미 신청한 활동입니다", FailureUnknown},
		{"empty everything", 0, "", FailureUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.status, tt.message))
		})
	}
}

func TestFailureKindString(t *testing.T) {
	assert.Equal(t, "duplicate", FailureDuplicate.String())
	assert.Equal(t, "unauthorized", FailureUnauthorized.String())
	assert.Equal(t, "not-found", FailureNotFound.String())
	assert.Equal(t, "unknown", FailureUnknown.String())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgUnauthorized, UserMessage(FailureUnauthorized, "token expired"))
	assert.Equal(t, MsgNotFound, UserMessage(FailureNotFound, "no such row"))
	assert.Equal(t, "invalid slot id", UserMessage(FailureUnknown, " invalid slot id "))
	assert.Equal(t, MsgSubmitFailed, UserMessage(FailureUnknown, ""))
}
