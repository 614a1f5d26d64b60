package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataLoad, cause, "read data.json")

	if err.Code != ErrCodeDataLoad {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDataLoad)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "DATA_LOAD: read data.json: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeLayout, "test"),
			code:     ErrCodeLayout,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeLayout, "test"),
			code:     ErrCodeDataLoad,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeDataLoad, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeDataLoad,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeDiagramConstruction, "test"),
			expected: ErrCodeDiagramConstruction,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeDataLoad, errors.New("no such file"), "read jmu.json"),
			expected: "read jmu.json: no such file",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConstruction(t *testing.T) {
	sentinel := errors.New("duplicate node name")
	err := Construction("node", 3, "Tuition", sentinel)

	if !Is(err, ErrCodeDiagramConstruction) {
		t.Fatalf("code = %v, want %v", GetCode(err), ErrCodeDiagramConstruction)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is(err, sentinel) = false, want true")
	}

	var ce *ConstructionError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As(*ConstructionError) = false")
	}
	if ce.Kind != "node" || ce.Index != 3 || ce.Name != "Tuition" {
		t.Errorf("ConstructionError = %+v", ce)
	}
	if !strings.Contains(err.Error(), `node 3 ("Tuition")`) {
		t.Errorf("Error() = %q, want record reference", err.Error())
	}
}
