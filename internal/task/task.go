// Package task wraps pipeline steps with uniform timing and error capture.
// A failed step becomes data in a Result instead of an error that unwinds
// the run; the caller decides whether to skip, continue, or abort.
package task

import (
	"time"

	"go.uber.org/zap"
)

// Result is the envelope returned for every executed step.
type Result[T any] struct {
	OK      bool
	Value   T
	Err     string
	Elapsed time.Duration
}

// Run executes fn, recording its duration. On error the returned Result
// carries the error text and a zero Value; the error itself stops here.
func Run[T any](name string, fn func() (T, error)) Result[T] {
	start := time.Now()
	v, err := fn()
	elapsed := time.Since(start)

	if err != nil {
		zap.L().Error("task failed",
			zap.String("task", name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		var zero T
		return Result[T]{OK: false, Value: zero, Err: err.Error(), Elapsed: elapsed}
	}

	return Result[T]{OK: true, Value: v, Elapsed: elapsed}
}
