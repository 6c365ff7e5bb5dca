// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff

import (
	"github.com/born-ml/gradtape/internal/autodiff/ops"
	"github.com/born-ml/gradtape/tensor"
)

// Binary operations take the traced operand first. The second operand is
// borrowed and always NoneTape; its gradient is still recorded under its
// identity.

// Add returns lhs + rhs.
func Add[E tensor.Float, T Tape](lhs Tensor[E, T], rhs Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.Add(lhs, rhs)
}

// Sub returns lhs - rhs.
func Sub[E tensor.Float, T Tape](lhs Tensor[E, T], rhs Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.Sub(lhs, rhs)
}

// Mul returns lhs * rhs element-wise.
func Mul[E tensor.Float, T Tape](lhs Tensor[E, T], rhs Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.Mul(lhs, rhs)
}

// Negate returns -x.
func Negate[E tensor.Float, T Tape](x Tensor[E, T]) Tensor[E, T] {
	return ops.Negate(x)
}

// Scale returns s * x.
func Scale[E tensor.Float, T Tape](x Tensor[E, T], s E) Tensor[E, T] {
	return ops.Scale(x, s)
}

// Square returns x * x.
func Square[E tensor.Float, T Tape](x Tensor[E, T]) Tensor[E, T] {
	return ops.Square(x)
}

// ReLU returns max(x, 0).
func ReLU[E tensor.Float, T Tape](x Tensor[E, T]) Tensor[E, T] {
	return ops.ReLU(x)
}

// Sum reduces x to a scalar.
func Sum[E tensor.Float, T Tape](x Tensor[E, T]) Tensor[E, T] {
	return ops.Sum(x)
}

// Mean reduces x to its scalar mean.
func Mean[E tensor.Float, T Tape](x Tensor[E, T]) Tensor[E, T] {
	return ops.Mean(x)
}

// MatMulTranspose returns x @ wᵀ for x of shape [in] or [batch, in] and
// w of shape [out, in].
func MatMulTranspose[E tensor.Float, T Tape](x Tensor[E, T], w Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.MatMulTranspose(x, w)
}

// AddBroadcast adds the vector b to every row of x.
func AddBroadcast[E tensor.Float, T Tape](x Tensor[E, T], b Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.AddBroadcast(x, b)
}

// MSE returns the mean squared error between pred and target.
func MSE[E tensor.Float, T Tape](pred Tensor[E, T], target Tensor[E, NoneTape]) Tensor[E, T] {
	return ops.MSE(pred, target)
}
