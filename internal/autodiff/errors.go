package autodiff

import (
	"errors"
	"fmt"
)

// Invariant violations raised by the gradient store and the tape.
//
// None of these is recoverable: each one means the computation that built
// the tape is wrong, and continuing would produce wrong gradients. They are
// raised with panic, wrapped so that errors.Is matches the recovered value.
var (
	// ErrNoGradient: a gradient was read or removed before anything wrote it.
	ErrNoGradient = errors.New("no gradient recorded")
	// ErrIDCollision: two entities that must differ share an identity.
	ErrIDCollision = errors.New("identity collision")
	// ErrTypeMismatch: a stored gradient has a different array type than requested.
	ErrTypeMismatch = errors.New("gradient type mismatch")
	// ErrTapeConsumed: the tape was used after Execute.
	ErrTapeConsumed = errors.New("gradient tape already executed")
	// ErrTapeMoved: a tensor was used after an op moved its tape to the op's output.
	ErrTapeMoved = errors.New("gradient tape moved to another tensor")
)

func fail(err error, format string, args ...any) {
	panic(fmt.Errorf("autodiff: %w: %s", err, fmt.Sprintf(format, args...)))
}

// Catch runs fn and converts a panic raised by this package into an error.
// Panics that do not carry one of the package's errors are re-raised.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		e, ok := r.(error)
		if !ok || !isAutodiffError(e) {
			panic(r)
		}
		err = e
	}()
	fn()
	return nil
}

func isAutodiffError(err error) bool {
	return errors.Is(err, ErrNoGradient) ||
		errors.Is(err, ErrIDCollision) ||
		errors.Is(err, ErrTypeMismatch) ||
		errors.Is(err, ErrTapeConsumed) ||
		errors.Is(err, ErrTapeMoved)
}
