package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "scope not found")
		if err.Error() != "[NOT_FOUND] scope not found" {
			t.Errorf("expected [NOT_FOUND] scope not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("exit status 1")
		err := Wrap(original, CodeFrontendFailure, "front-end failed")
		expected := "[FRONTEND_FAILURE] front-end failed: exit status 1"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeInvalidEvent, "unknown event type")
		if !IsCode(err, CodeInvalidEvent) {
			t.Error("expected IsCode to return true for CodeInvalidEvent")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeInvalidEvent, "bad kind"), CtxLine, 7)
		v, ok := ContextValue(err, CtxLine)
		if !ok || v != 7 {
			t.Errorf("expected line context 7, got %v (%v)", v, ok)
		}

		plain := AddContext(errors.New("boom"), CtxPath, "trace.jsonl")
		if !IsCode(plain, CodeInternal) {
			t.Error("expected plain error to be wrapped as internal")
		}
	})
}
