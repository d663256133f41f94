package errors

import (
	"fmt"
	"strings"
)

// ConfigurationError is the failure surfaced by a chain build. It names the
// chain being assembled when the failure is specific to one chain.
type ConfigurationError struct {
	ChainID string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.ChainID != "" {
		return fmt.Sprintf("chain '%s': %s", e.ChainID, msg)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError builds a ConfigurationError from a format string.
func NewConfigurationError(chainID string, format string, args ...any) error {
	return WithStackTrace(&ConfigurationError{ChainID: chainID, Message: fmt.Sprintf(format, args...)})
}

// WrapConfiguration wraps err as a ConfigurationError for the given chain.
// An err that already is a ConfigurationError for the same chain is returned as is.
func WrapConfiguration(chainID string, err error) error {
	if err == nil {
		return nil
	}

	var cfgErr *ConfigurationError
	if As(err, &cfgErr) && cfgErr.ChainID == chainID {
		return err
	}

	return WithStackTrace(&ConfigurationError{ChainID: chainID, Err: err})
}

// CycleError reports every node the ordering engine could not emit.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("the dependencies form a cycle, unresolved nodes: %s", strings.Join(e.Nodes, ", "))
}

// InheritanceCycleError reports a chain specification that transitively
// inherits itself. Path starts and ends with the same chain.
type InheritanceCycleError struct {
	Path []string
}

func (e *InheritanceCycleError) Error() string {
	return fmt.Sprintf("chain '%s' inherits itself: %s", e.Path[0], strings.Join(e.Path, " -> "))
}

// ReferenceKind tells what an unresolved reference was pointing at.
type ReferenceKind string

const (
	ComponentReference ReferenceKind = "component"
	ChainReference     ReferenceKind = "chain"
)

// UnresolvedReferenceError reports a specification that matched nothing.
type UnresolvedReferenceError struct {
	From string
	Ref  string
	Kind ReferenceKind
}

func (e *UnresolvedReferenceError) Error() string {
	if e.Kind == ChainReference {
		return fmt.Sprintf("chain '%s' inherits unknown chain '%s'", e.From, e.Ref)
	}
	return fmt.Sprintf("chain '%s' references unknown component '%s'", e.From, e.Ref)
}

// ExclusionError reports an exclusion that removed nothing.
type ExclusionError struct {
	ChainID  string
	Excluded string
}

func (e *ExclusionError) Error() string {
	return fmt.Sprintf("chain '%s' excludes '%s' which is not present in any inherited chain", e.ChainID, e.Excluded)
}
