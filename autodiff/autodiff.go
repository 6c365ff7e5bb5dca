// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation on a
// gradient tape.
//
// Operations compute their result eagerly and, when their input carries an
// OwnedTape, append one backward closure to it. Backward runs the closures
// newest first against a Gradients store keyed by tensor identity.
//
// Example:
//
//	import (
//	    "github.com/born-ml/gradtape/autodiff"
//	    "github.com/born-ml/gradtape/tensor"
//	)
//
//	func main() {
//	    w, _ := autodiff.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//
//	    loss := autodiff.Sum(autodiff.Square(w.Trace()))
//	    grads := autodiff.Backward(loss)
//
//	    g := autodiff.RefGradient[tensor.Array[float32]](grads, w) // [2 4 6]
//	}
package autodiff

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/tensor"
)

// Errors carried by panics on invariant violations.
var (
	ErrNoGradient   = autodiff.ErrNoGradient
	ErrIDCollision  = autodiff.ErrIDCollision
	ErrTypeMismatch = autodiff.ErrTypeMismatch
	ErrTapeConsumed = autodiff.ErrTapeConsumed
	ErrTapeMoved    = autodiff.ErrTapeMoved
)

// Gradients is the identity-keyed gradient store.
type Gradients = autodiff.Gradients

// BackwardOp is a recorded backward closure.
type BackwardOp = autodiff.BackwardOp

// GradientTape records backward closures and executes them in reverse.
type GradientTape = autodiff.GradientTape

// Tape is the capability to record backward closures.
type Tape = autodiff.Tape

// OwnedTape records into a GradientTape.
type OwnedTape = autodiff.OwnedTape

// NoneTape records nothing.
type NoneTape = autodiff.NoneTape

// Tensor is an array with an identity and a tape capability.
type Tensor[E tensor.Float, T Tape] = autodiff.Tensor[E, T]

// Parameter is anything an optimizer can fetch a gradient for.
type Parameter[E tensor.Float] = autodiff.Parameter[E]

// GradientProvider hands out update steps for parameters.
type GradientProvider[E tensor.Float] = autodiff.GradientProvider[E]

// CanUpdateWithGradients is implemented by models and parameters.
type CanUpdateWithGradients[E tensor.Float] = autodiff.CanUpdateWithGradients[E]

// NewGradients creates an empty store.
func NewGradients() *Gradients {
	return autodiff.NewGradients()
}

// NewGradientTape creates an empty tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// NewOwnedTape creates a capability backed by a new tape.
func NewOwnedTape() OwnedTape {
	return autodiff.NewOwnedTape()
}

// MutGradient returns t's gradient, allocating zeros on first access.
func MutGradient[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	return autodiff.MutGradient(g, t)
}

// RefGradient returns t's existing gradient. Panics with ErrNoGradient if absent.
func RefGradient[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	return autodiff.RefGradient(g, t)
}

// LookupGradient returns t's gradient and whether it exists.
func LookupGradient[A any](g *Gradients, t tensor.HasDevice[A]) (*A, bool) {
	return autodiff.LookupGradient(g, t)
}

// Remove takes t's gradient out of the store. Panics with ErrNoGradient if absent.
func Remove[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	return autodiff.Remove(g, t)
}

// Insert stores grad as t's gradient.
func Insert[A any](g *Gradients, t tensor.HasDevice[A], grad *A) {
	autodiff.Insert(g, t, grad)
}

// MutAndRef returns l's gradient for writing and r's for reading.
// Panics with ErrIDCollision if l and r share an identity.
func MutAndRef[L, R any](g *Gradients, l tensor.HasDevice[L], r tensor.HasDevice[R]) (*L, *R) {
	return autodiff.MutAndRef(g, l, r)
}

// Catch runs fn and returns any autodiff invariant violation as an error.
func Catch(fn func()) error {
	return autodiff.Catch(fn)
}

// NewTensor wraps data in a tensor with a fresh identity.
func NewTensor[E tensor.Float](data *tensor.Array[E]) Tensor[E, NoneTape] {
	return autodiff.NewTensor(data)
}

// FromSlice creates a tensor from a Go slice.
func FromSlice[E tensor.Float](data []E, shape tensor.Shape) (Tensor[E, NoneTape], error) {
	return autodiff.FromSlice(data, shape)
}

// Zeros creates a zero-filled tensor.
func Zeros[E tensor.Float](shape tensor.Shape) (Tensor[E, NoneTape], error) {
	return autodiff.Zeros[E](shape)
}

// Scalar creates a scalar tensor.
func Scalar[E tensor.Float](v E) Tensor[E, NoneTape] {
	return autodiff.Scalar(v)
}

// PutTape attaches tape to t.
func PutTape[E tensor.Float, T Tape](t Tensor[E, NoneTape], tape T) Tensor[E, T] {
	return autodiff.PutTape(t, tape)
}

// Backward runs the tape of a one-element loss and returns its gradients.
func Backward[E tensor.Float](loss Tensor[E, OwnedTape]) *Gradients {
	return autodiff.Backward(loss)
}
