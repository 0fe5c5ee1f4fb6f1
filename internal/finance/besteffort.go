package finance

// BestEffort carries the outcome of an operation whose failure must not fail
// the caller. The order totals refresh and the recurring expense sweep run in
// this mode: callers may inspect Err (and log it) but never receive a hard
// error from the step.
type BestEffort[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the operation succeeded.
func (b BestEffort[T]) Ok() bool {
	return b.Err == nil
}

// Succeed wraps a value in a successful BestEffort.
func Succeed[T any](value T) BestEffort[T] {
	return BestEffort[T]{Value: value}
}

// Fail wraps an error in a failed BestEffort.
func Fail[T any](err error) BestEffort[T] {
	return BestEffort[T]{Err: err}
}
