// Package assert holds invariant checks for programming errors.
//
// A failed check is logged and, unless the binary was built with the
// "release" tag, panics. Callers get the condition back so release builds
// can fall through to a safe path.
package assert

import (
	"fmt"

	"RenderPipeline/internal/logger"

	"go.uber.org/zap"
)

// Failure is the panic value of a failed check.
type Failure struct {
	Msg string
}

func (f Failure) Error() string {
	return "assertion failed: " + f.Msg
}

// That checks cond. It returns cond unchanged.
func That(cond bool, msg string, fields ...zap.Field) bool {
	if cond {
		return true
	}
	logger.Log.Error("Assertion failed: "+msg, fields...)
	if Enabled {
		panic(Failure{Msg: msg})
	}
	return false
}

// Thatf is That with a formatted message.
func Thatf(cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	return That(false, fmt.Sprintf(format, args...))
}
