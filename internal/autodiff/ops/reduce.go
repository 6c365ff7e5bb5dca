package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Sum reduces x to a scalar holding the sum of its elements.
//
// Backward pass: every element of grad_x receives outputGrad.
func Sum[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	return reduce(x, 1)
}

// Mean reduces x to a scalar holding the mean of its elements.
//
// Backward pass: every element of grad_x receives outputGrad / n.
func Mean[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	return reduce(x, 1/E(x.Data().Len()))
}

func reduce[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T], factor E) autodiff.Tensor[E, T] {
	out := scalarArray(x.Data().Sum() * factor)

	in, tape := x.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		ip, op := in.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			xGrad, outGrad := mutAndRef(g, ip, op)
			addConst(xGrad, outGrad.Data()[0]*factor)
		})
	}
	return autodiff.PutTape(result, tape)
}
