package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "Tweet not found.",
	}

	expected := "NOT_FOUND: Tweet not found."
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("draft is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "draft is required" {
		t.Errorf("Message = %q, want %q", err.Message, "draft is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01HXYZ")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01HXYZ" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "01HXYZ")
	}
}

func TestNewGenerationFailed(t *testing.T) {
	cause := fmt.Errorf("ollama request failed: 503 Service Unavailable")
	err := NewGenerationFailed(cause, "http://localhost:11434")

	if err.Code != ErrGenerationFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrGenerationFailed)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if !strings.Contains(err.Message, "503 Service Unavailable") {
		t.Errorf("Message = %q, want underlying status", err.Message)
	}
	if !strings.Contains(err.Message, "Is Ollama running at http://localhost:11434?") {
		t.Errorf("Message = %q, want reachability hint", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected GENERATION_FAILED to unwrap to its cause")
	}
}

func TestNewInternal(t *testing.T) {
	err := NewInternal(fmt.Errorf("disk full"))
	if err.Code != ErrInternal || err.Status != 500 {
		t.Errorf("got %s/%d, want INTERNAL/500", err.Code, err.Status)
	}
	if err.Message != "disk full" {
		t.Errorf("Message = %q, want %q", err.Message, "disk full")
	}

	if NewInternal(nil).Message != "internal error" {
		t.Error("nil cause should produce generic message")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", NewNotFound("x"), ErrNotFound, true},
		{"different code", NewNotFound("x"), ErrInvalidRequest, false},
		{"wrapped", fmt.Errorf("delete: %w", NewNotFound("x")), ErrNotFound, true},
		{"plain error", fmt.Errorf("boom"), ErrInternal, false},
		{"nil", nil, ErrInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAs(t *testing.T) {
	orig := NewInvalidRequest("bad")
	if got := As(orig); got != orig {
		t.Error("As should return the same AppError")
	}

	got := As(fmt.Errorf("boom"))
	if got.Code != ErrInternal {
		t.Errorf("Code = %q, want INTERNAL", got.Code)
	}
}
