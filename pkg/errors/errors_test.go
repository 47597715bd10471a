package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedRecord, "node %d: missing %q", 3, "uv")

	if err.Code != ErrCodeMalformedRecord {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeMalformedRecord)
	}
	want := `node 3: missing "uv"`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
	if !strings.Contains(err.Error(), "MALFORMED_RECORD") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("no such file")
	err := Wrap(ErrCodeInvalidPath, cause, "open %s", "world.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"Match", New(ErrCodeDanglingReference, "edge 1->99"), ErrCodeDanglingReference, true},
		{"Mismatch", New(ErrCodeDanglingReference, "edge 1->99"), ErrCodeAlreadyFinalized, false},
		{"WrappedMatch", fmt.Errorf("build: %w", New(ErrCodeUnrecognizedDocument, "scalar root")), ErrCodeUnrecognizedDocument, true},
		{"PlainError", fmt.Errorf("plain"), ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeAlreadyFinalized, "add after build")); got != ErrCodeAlreadyFinalized {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeAlreadyFinalized)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format: webp")
	if got := UserMessage(err); got != "unknown format: webp" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}
