package batch

import (
	"fmt"

	"go.uber.org/zap"
)

// violation reports a logic-violation precondition failure: a
// programmer error (wrong mode, malformed SetContents buffer), not a
// recoverable data-driven condition. Mirrors keys.violation.
func violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	zap.L().Error("precondition violated", zap.String("detail", msg))
	panic(msg)
}
