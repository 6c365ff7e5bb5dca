package nn

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/autodiff/ops"
	"github.com/born-ml/gradtape/internal/tensor"
	"golang.org/x/exp/rand"
)

// Linear implements a fully connected layer: y = x @ Wᵀ + b.
//
//   - x: [in] or [batch, in]
//   - W: [out, in]
//   - b: [out]
//   - y: [out] or [batch, out]
//
// Weights are Xavier-initialized, biases start at zero.
type Linear[E tensor.Float] struct {
	inFeatures  int
	outFeatures int
	weight      autodiff.Tensor[E, autodiff.NoneTape] // [out_features, in_features]
	bias        autodiff.Tensor[E, autodiff.NoneTape] // [out_features]
}

var _ Module[float32] = (*Linear[float32])(nil)

// NewLinear creates a Linear layer initialized from rng.
func NewLinear[E tensor.Float](inFeatures, outFeatures int, rng *rand.Rand) *Linear[E] {
	weight := Xavier[E](inFeatures, outFeatures, tensor.Shape{outFeatures, inFeatures}, rng)
	bias, err := autodiff.Zeros[E](tensor.Shape{outFeatures})
	if err != nil {
		panic(err)
	}

	return &Linear[E]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
	}
}

// NewLinearFrom creates a Linear layer from existing weight [out, in] and
// bias [out] tensors.
func NewLinearFrom[E tensor.Float](weight, bias autodiff.Tensor[E, autodiff.NoneTape]) (*Linear[E], error) {
	ws, bs := weight.Shape(), bias.Shape()
	if len(ws) != 2 {
		return nil, fmt.Errorf("linear: weight must be 2D [out, in], got %v", ws)
	}
	if len(bs) != 1 || bs[0] != ws[0] {
		return nil, fmt.Errorf("linear: bias shape %v does not match weight %v", bs, ws)
	}
	return &Linear[E]{
		inFeatures:  ws[1],
		outFeatures: ws[0],
		weight:      weight,
		bias:        bias,
	}, nil
}

// Forward computes the layer output and records its backward ops.
func (l *Linear[E]) Forward(x autodiff.Tensor[E, autodiff.OwnedTape]) autodiff.Tensor[E, autodiff.OwnedTape] {
	return linear(l, x)
}

// Infer computes the layer output without recording.
func (l *Linear[E]) Infer(x autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, autodiff.NoneTape] {
	return linear(l, x)
}

func linear[E tensor.Float, T autodiff.Tape](l *Linear[E], x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	shape := x.Shape()
	if len(shape) == 0 || shape[len(shape)-1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got shape %v", l.inFeatures, shape))
	}
	return ops.AddBroadcast(ops.MatMulTranspose(x, l.weight), l.bias)
}

// Update applies the provider's steps to weight and bias.
func (l *Linear[E]) Update(p autodiff.GradientProvider[E]) {
	l.weight.Update(p)
	l.bias.Update(p)
}

// Parameters returns [weight, bias].
func (l *Linear[E]) Parameters() []autodiff.Tensor[E, autodiff.NoneTape] {
	return []autodiff.Tensor[E, autodiff.NoneTape]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[E]) Weight() autodiff.Tensor[E, autodiff.NoneTape] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[E]) Bias() autodiff.Tensor[E, autodiff.NoneTape] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[E]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[E]) OutFeatures() int {
	return l.outFeatures
}
