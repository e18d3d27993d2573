package main

import (
	"errors"
	"fmt"
)

// errAborted signals that the user backed out of a picker prompt.
// Callers treat it as a no-op rather than a failure.
var errAborted = errors.New("aborted")

// ValidationError reports a request that was rejected before any I/O ran.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IOError wraps a storage failure with the operation that produced it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// CapabilityError reports a persistence tier that the current storage
// mode cannot serve.
type CapabilityError struct {
	Tier Tier
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("storage does not support %s", e.Tier)
}
