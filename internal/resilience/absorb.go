package resilience

import (
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Result is the outcome of one stage: a value, or the error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

// Try runs fn and captures its outcome. A panic inside fn is recovered and
// reported as an error.
func Try[T any](fn func() (T, error)) (r Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			r = Result[T]{Value: zero, Err: eris.Errorf("panic: %v", p)}
		}
	}()
	v, err := fn()
	return Result[T]{Value: v, Err: err}
}

// OrEmpty returns the value, or the zero value when the stage failed. A
// failure is logged at warn level under the given stage name.
func (r Result[T]) OrEmpty(stage string) T {
	return r.orEmpty(stage, zapcore.WarnLevel)
}

func (r Result[T]) orEmpty(stage string, level zapcore.Level) T {
	if r.Err == nil {
		return r.Value
	}
	zap.L().Log(level, "stage failed, continuing with empty result",
		zap.String("stage", stage),
		zap.Error(r.Err),
	)
	if h := absorbHook.Load(); h != nil {
		(*h)(stage)
	}
	var zero T
	return zero
}

// Absorb is Try followed by OrEmpty: failures in fn never reach the caller.
func Absorb[T any](stage string, fn func() (T, error)) T {
	return Try(fn).OrEmpty(stage)
}

// AbsorbDebug is Absorb for boundaries where failure is routine, such as a
// single provider in a fallback chain. Failures are logged at debug level.
func AbsorbDebug[T any](stage string, fn func() (T, error)) T {
	return Try(fn).orEmpty(stage, zapcore.DebugLevel)
}

var absorbHook atomic.Pointer[func(stage string)]

// OnAbsorb registers a callback invoked with the stage name every time a
// failure is absorbed. Passing nil removes it.
func OnAbsorb(fn func(stage string)) {
	if fn == nil {
		absorbHook.Store(nil)
		return
	}
	absorbHook.Store(&fn)
}
