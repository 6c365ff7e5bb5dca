// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides model layers trained through the gradient tape.
//
// # Overview
//
// This package contains:
//   - Layers: Linear
//   - Activations: ReLU
//   - Containers: Sequential, NewMLP
//   - Initialization: Xavier
//
// Every module has two entry points. Forward takes a traced input and
// records backward ops; Infer takes a plain input and records nothing.
//
// # Basic Usage
//
//	model := nn.NewSequential[float32](
//	    nn.NewLinear[float32](4, 16, nn.NewRand(42)),
//	    nn.NewReLU[float32](),
//	    nn.NewLinear[float32](16, 1, nn.NewRand(43)),
//	)
//
//	pred := model.Forward(x.Trace())
//	loss := autodiff.MSE(pred, y)
//	grads := autodiff.Backward(loss)
package nn

import (
	"github.com/born-ml/gradtape/autodiff"
	"github.com/born-ml/gradtape/internal/nn"
	"github.com/born-ml/gradtape/tensor"
	"golang.org/x/exp/rand"
)

// Module is the interface implemented by all layers.
type Module[E tensor.Float] = nn.Module[E]

// Linear is a fully connected layer: y = x @ Wᵀ + b.
type Linear[E tensor.Float] = nn.Linear[E]

// ReLU is a parameterless activation layer.
type ReLU[E tensor.Float] = nn.ReLU[E]

// Sequential runs modules in order.
type Sequential[E tensor.Float] = nn.Sequential[E]

// NewRand returns a deterministic random source for initialization.
func NewRand(seed uint64) *rand.Rand {
	return nn.NewRand(seed)
}

// NewLinear creates a Xavier-initialized Linear layer.
func NewLinear[E tensor.Float](inFeatures, outFeatures int, rng *rand.Rand) *Linear[E] {
	return nn.NewLinear[E](inFeatures, outFeatures, rng)
}

// NewLinearFrom creates a Linear layer from weight [out, in] and bias [out].
func NewLinearFrom[E tensor.Float](weight, bias autodiff.Tensor[E, autodiff.NoneTape]) (*Linear[E], error) {
	return nn.NewLinearFrom(weight, bias)
}

// NewReLU creates a ReLU layer.
func NewReLU[E tensor.Float]() ReLU[E] {
	return nn.NewReLU[E]()
}

// NewSequential creates a container running modules in order.
func NewSequential[E tensor.Float](modules ...Module[E]) *Sequential[E] {
	return nn.NewSequential[E](modules...)
}

// NewMLP builds Linear(in, hidden) → ReLU → Linear(hidden, out).
func NewMLP[E tensor.Float](in, hidden, out int, rng *rand.Rand) *Sequential[E] {
	return nn.NewMLP[E](in, hidden, out, rng)
}

// Xavier returns a tensor drawn from the Glorot uniform distribution.
func Xavier[E tensor.Float](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) autodiff.Tensor[E, autodiff.NoneTape] {
	return nn.Xavier[E](fanIn, fanOut, shape, rng)
}
