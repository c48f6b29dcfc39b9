package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidWidth, "width must be positive, got %v", -1)

	if err.Code != ErrCodeInvalidWidth {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidWidth)
	}
	if err.Message != "width must be positive, got -1" {
		t.Errorf("Message = %v", err.Message)
	}
	expected := "INVALID_WIDTH: width must be positive, got -1"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidDocument, cause, "decode page.json")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return the cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "INVALID_DOCUMENT: decode page.json: unexpected EOF" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidFormat, "x"), ErrCodeInvalidFormat, true},
		{"non-matching code", New(ErrCodeInvalidFormat, "x"), ErrCodeBackend, false},
		{"outer code wins", Wrap(ErrCodeBackend, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeBackend, true},
		{"fmt wrapped", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidMetrics, "x"), ErrCodeInvalidMetrics},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestIsInvalid(t *testing.T) {
	if !IsInvalid(New(ErrCodeInvalidTheme, "x")) {
		t.Error("INVALID_THEME should be an input error")
	}
	if IsInvalid(New(ErrCodeBackend, "x")) || IsInvalid(errors.New("x")) {
		t.Error("non-input errors reported as invalid")
	}
}

func TestUserMessageIncludesCauses(t *testing.T) {
	err := fmt.Errorf("load: %w", Wrap(ErrCodeInvalidDocument, errors.New("missing type"), "block %d", 3))
	if got, want := UserMessage(err), "block 3: missing type"; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
}

func TestCodeInvalid(t *testing.T) {
	for _, c := range []Code{ErrCodeInvalidInput, ErrCodeInvalidDocument, ErrCodeInvalidWidth,
		ErrCodeInvalidFormat, ErrCodeInvalidMetrics, ErrCodeInvalidTheme, ErrCodeInvalidPath} {
		if !c.Invalid() {
			t.Errorf("%s.Invalid() = false", c)
		}
	}
	for _, c := range []Code{ErrCodeNotFound, ErrCodeTimeout, ErrCodeInternal, ""} {
		if c.Invalid() {
			t.Errorf("%q.Invalid() = true", c)
		}
	}
}
