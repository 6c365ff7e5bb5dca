// Package nn implements model layers on top of the autodiff tape.
//
// Every layer's forward pass is written once, generic over the tape
// capability, and exposed twice:
//   - Forward: input carries an OwnedTape, backward ops are recorded
//   - Infer: input carries a NoneTape, nothing is recorded
//
// Parameters are NoneTape tensors owned by the layer. Gradients reach them
// through their identities, and Update applies an optimizer's steps to them.
package nn

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/autodiff/ops"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Module is the interface for all layers.
type Module[E tensor.Float] interface {
	// Forward computes the output and records backward ops on x's tape.
	Forward(x autodiff.Tensor[E, autodiff.OwnedTape]) autodiff.Tensor[E, autodiff.OwnedTape]

	// Infer computes the output without recording anything.
	Infer(x autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, autodiff.NoneTape]

	// Parameters returns all trainable parameters, including nested ones.
	Parameters() []autodiff.Tensor[E, autodiff.NoneTape]

	autodiff.CanUpdateWithGradients[E]
}

// ReLU is a parameterless activation layer.
type ReLU[E tensor.Float] struct{}

// NewReLU creates a ReLU layer.
func NewReLU[E tensor.Float]() ReLU[E] {
	return ReLU[E]{}
}

// Forward applies ReLU and records its backward op.
func (ReLU[E]) Forward(x autodiff.Tensor[E, autodiff.OwnedTape]) autodiff.Tensor[E, autodiff.OwnedTape] {
	return ops.ReLU(x)
}

// Infer applies ReLU.
func (ReLU[E]) Infer(x autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, autodiff.NoneTape] {
	return ops.ReLU(x)
}

// Parameters returns nil.
func (ReLU[E]) Parameters() []autodiff.Tensor[E, autodiff.NoneTape] {
	return nil
}

// Update does nothing.
func (ReLU[E]) Update(autodiff.GradientProvider[E]) {}
