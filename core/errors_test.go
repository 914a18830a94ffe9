package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	testCases := []struct {
		err    *Error
		target *Error
		want   bool
	}{
		{New(Timeout), ErrTimeout, true},
		{New(Timeout), ErrNack, false},
		{Wrap(Io, fmt.Errorf("closed")), ErrIo, true},
		{New(Protocol), ErrCorrupt, false},
	}

	for _, tc := range testCases {
		if got := errors.Is(tc.err, tc.target); got != tc.want {
			t.Errorf("errors.Is(%v, %v) = %v, want %v", tc.err, tc.target, got, tc.want)
		}
	}
}

func TestErrorUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("device disconnected")
	err := Wrap(Io, cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped error to unwrap to cause")
	}
}

func TestNodeIdValue(t *testing.T) {
	n := NodeId(42)
	if n.Value() != 42 {
		t.Errorf("expected value 42, got %d", n.Value())
	}
}
