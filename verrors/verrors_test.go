package verrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(UnsupportedType, "bad type %s", "Foo")
	want := "UnsupportedType: bad type Foo"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestAtAttachesPosition(t *testing.T) {
	err := New(InvalidArgument, "oops").At(Position{Line: 3, Column: 5})
	want := "InvalidArgument at 3:5: oops"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(UndefinedReference, cause, "lookup failed")
	if !errors.Is(err, cause) {
		t.Error("Wrap should chain Unwrap to the cause for errors.Is")
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(StructureMismatch, "mismatch")
	if !Is(err, StructureMismatch) {
		t.Error("Is should match the error's own kind")
	}
	if Is(err, InvalidArgument) {
		t.Error("Is should not match a different kind")
	}
}

func TestIsTraversesWrapping(t *testing.T) {
	inner := New(UnsupportedOperation, "bad op")
	outer := fmt.Errorf("statement failed: %w", inner)
	if !Is(outer, UnsupportedOperation) {
		t.Error("Is should traverse a standard fmt.Errorf %w wrapper to find the inner *Error")
	}
}

func TestIsOnPlainError(t *testing.T) {
	if Is(errors.New("plain"), InvalidArgument) {
		t.Error("Is should return false for an error that is not a *Error anywhere in its chain")
	}
}
