// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers that apply tape gradients to models.
//
// An optimizer consumes the Gradients store produced by autodiff.Backward:
// each parameter reached through model.Update takes its gradient out of the
// store, so the same store is never applied twice.
//
// Example:
//
//	model := nn.NewMLP[float32](2, 16, 1, nn.NewRand(1))
//	optimizer := optim.NewAdam[float32](optim.AdamConfig{LR: 0.01})
//
//	for range epochs {
//	    loss := autodiff.MSE(model.Forward(x.Trace()), y)
//	    optimizer.Update(model, autodiff.Backward(loss))
//	}
package optim

import (
	"github.com/born-ml/gradtape/internal/optim"
	"github.com/born-ml/gradtape/tensor"
)

// Optimizer is the common interface of all optimizers.
type Optimizer[E tensor.Float] = optim.Optimizer[E]

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[E tensor.Float] = optim.SGD[E]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD[float32](optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD[E tensor.Float](config SGDConfig) *SGD[E] {
	return optim.NewSGD[E](config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[E tensor.Float] = optim.Adam[E]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam[float32](optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam[E tensor.Float](config AdamConfig) *Adam[E] {
	return optim.NewAdam[E](config)
}
