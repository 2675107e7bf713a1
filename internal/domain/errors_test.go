package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrappersPreserveCause(t *testing.T) {
	root := errors.New("connection refused")

	cases := []struct {
		name string
		err  error
	}{
		{"validation", &ValidationError{Message: "bad input", Cause: root}},
		{"persistence", &PersistenceError{Message: "could not insert new subscriber", Cause: root}},
		{"dispatch", &DispatchError{Message: "failed to send confirmation email", Cause: root}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, root) {
				t.Errorf("%v should wrap the root cause", tc.err)
			}
		})
	}
}

func TestErrorMessageOmitsCause(t *testing.T) {
	err := &PersistenceError{
		Message: "could not insert new subscriber",
		Cause:   errors.New("pq: relation does not exist"),
	}
	if err.Error() != "could not insert new subscriber" {
		t.Errorf("Error() = %q, must not include the cause", err.Error())
	}
}

func TestCauseChain(t *testing.T) {
	root := errors.New("dial tcp: connection refused")
	mid := fmt.Errorf("executing request: %w", root)
	top := &DispatchError{Message: "failed to send confirmation email", Cause: mid}

	got := CauseChain(top)
	want := "failed to send confirmation email\n" +
		"  caused by: executing request: dial tcp: connection refused\n" +
		"  caused by: dial tcp: connection refused"
	if got != want {
		t.Errorf("CauseChain() =\n%s\nwant\n%s", got, want)
	}

	if CauseChain(nil) != "" {
		t.Error("CauseChain(nil) should be empty")
	}
}
