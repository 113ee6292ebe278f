package services

import (
	"errors"
	"testing"
)

func TestWrapCarriesMarker(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(ErrTransport, "local llm", "send request", "", inner)
	if !errors.Is(err, ErrTransport) {
		t.Fatal("wrapped error lost its marker")
	}
	if !errors.Is(err, inner) {
		t.Fatal("wrapped error lost its cause")
	}
}

func TestWrapMessageShape(t *testing.T) {
	err := Wrap(ErrTimeout, "local llm", "send request", "deadline hit", nil)
	want := "timeout: local llm: send request: deadline hit"
	if err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaults(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransport) {
		t.Fatal("nil marker should default to transport")
	}
	if err.Error() != "transport error: service failure" {
		t.Fatalf("error = %q", err.Error())
	}
}
