package main

import (
	"errors"
	"fmt"
	"io"
)

const (
	ExitSuccess    = 0
	ExitGeneric    = 1
	ExitNoOrganism = 2
	ExitConfig     = 4
)

var errNoOrganism = errors.New("no fittest organism found")

// exitError carries a process exit code alongside the cause.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error {
	return &exitError{code: ExitConfig, err: fmt.Errorf("configuration: %w", err)}
}

func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, errNoOrganism):
		return ExitNoOrganism
	default:
		return ExitGeneric
	}
}

func reportError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(w, "accneatctl: %v\n", err)
	return exitCode(err)
}
