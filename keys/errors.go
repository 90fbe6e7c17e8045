package keys

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CorruptionReason classifies why a write-batch iteration failed, so
// callers can branch on it with errors.As instead of matching message
// strings.
type CorruptionReason int

const (
	CorruptUnknown CorruptionReason = iota
	CorruptBadHeader
	CorruptUnknownTag
	CorruptTruncatedRecord
	CorruptCountMismatch
)

// CorruptionError is the error kind reserved for write-batch framing
// failures. It wraps a plain error (so errors.Is/errors.As compose
// normally) and carries a Reason for programmatic branching.
type CorruptionError struct {
	err    error
	Reason CorruptionReason
}

func (e *CorruptionError) Error() string { return e.err.Error() }
func (e *CorruptionError) Unwrap() error { return e.err }

// NewCorruptionError builds a CorruptionError and logs a structured
// diagnostic alongside the returned error.
func NewCorruptionError(reason CorruptionReason, msg string) *CorruptionError {
	zap.L().Error("write batch corruption", zap.String("reason", msg))
	return &CorruptionError{err: errors.New(msg), Reason: reason}
}

// violation reports a logic-violation precondition failure: a
// programmer error, not a recoverable data-driven condition. It logs
// at Error level and aborts, since these indicate a caller broke an
// invariant this package assumes holds (seq within range, kind within
// range, a key at least as long as its trailer).
func violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	zap.L().Error("precondition violated", zap.String("detail", msg))
	panic(msg)
}
