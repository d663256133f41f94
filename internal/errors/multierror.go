package errors

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError is an error type to track multiple errors.
type MultiError struct {
	inner *multierror.Error
}

// Error implements the error interface.
func (errs *MultiError) Error() string {
	wrapped := errs.WrappedErrors()
	if len(wrapped) == 1 {
		return wrapped[0].Error()
	}

	lines := make([]string, 0, len(wrapped))
	for _, err := range wrapped {
		lines = append(lines, "- "+strings.ReplaceAll(err.Error(), "\n", "\n  "))
	}

	return fmt.Sprintf("%d errors occurred:\n%s", len(wrapped), strings.Join(lines, "\n"))
}

// WrappedErrors returns the error slice that this Error is wrapping.
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	return errs.inner.WrappedErrors()
}

func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// Len returns the number of collected errors.
func (errs *MultiError) Len() int {
	return len(errs.WrappedErrors())
}

// ErrorOrNil returns an error interface if this Error represents
// a list of errors, or returns nil if the list of errors is empty.
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	if err := errs.inner.ErrorOrNil(); err != nil {
		return errs
	}

	return nil
}

// Append is a helper function that will append more errors
// onto an Multierror in order to create a larger errs-error.
// Nil errors are dropped.
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	if errs == nil {
		errs = &MultiError{inner: new(multierror.Error)}
	}

	if errs.inner == nil {
		errs.inner = new(multierror.Error)
	}

	for _, err := range appendErrs {
		if err != nil {
			errs.inner = multierror.Append(errs.inner, err)
		}
	}

	return errs
}
