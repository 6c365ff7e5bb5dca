package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Negate computes -x.
func Negate[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	return unary(x, func(v E) E { return -v }, func(xGrad, outGrad, _ *tensor.Array[E]) {
		xGrad.SubAssign(outGrad)
	})
}

// Scale computes s * x.
func Scale[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T], s E) autodiff.Tensor[E, T] {
	return unary(x, func(v E) E { return s * v }, func(xGrad, outGrad, _ *tensor.Array[E]) {
		xGrad.AddScaled(outGrad, s)
	})
}

// Square computes x² element-wise.
//
// Backward pass: grad_x += 2x * outputGrad.
func Square[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	return unary(x, func(v E) E { return v * v }, func(xGrad, outGrad, in *tensor.Array[E]) {
		dst, og, xv := xGrad.Data(), outGrad.Data(), in.Data()
		for i := range dst {
			dst[i] += 2 * xv[i] * og[i]
		}
	})
}

// ReLU computes max(0, x) element-wise.
//
// Backward pass: grad_x += outputGrad where x > 0.
func ReLU[E tensor.Float, T autodiff.Tape](x autodiff.Tensor[E, T]) autodiff.Tensor[E, T] {
	return unary(x, func(v E) E { return max(v, 0) }, func(xGrad, outGrad, in *tensor.Array[E]) {
		dst, og, xv := xGrad.Data(), outGrad.Data(), in.Data()
		for i := range dst {
			if xv[i] > 0 {
				dst[i] += og[i]
			}
		}
	})
}

// unary applies forward element-wise and records backward, which receives
// (input gradient, output gradient, input values).
func unary[E tensor.Float, T autodiff.Tape](
	x autodiff.Tensor[E, T],
	forward func(E) E,
	backward func(xGrad, outGrad, in *tensor.Array[E]),
) autodiff.Tensor[E, T] {
	out := x.Data().Map(forward)

	in, tape := x.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		values := in.Data()
		ip, op := in.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			xGrad, outGrad := mutAndRef(g, ip, op)
			backward(xGrad, outGrad, values)
		})
	}
	return autodiff.PutTape(result, tape)
}
