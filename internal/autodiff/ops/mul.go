package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Mul computes lhs * rhs element-wise.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a += outputGrad * b
//   - d(a*b)/db = a, so grad_b += outputGrad * a
func Mul[E tensor.Float, T autodiff.Tape](lhs autodiff.Tensor[E, T], rhs autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	mustSameShape("Mul", lhs.Data(), rhs.Data())

	out := lhs.Data().Clone()
	out.MulAssign(rhs.Data())

	l, tape := lhs.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		a, b := l.Data(), rhs.Data()
		lp, rp, op := l.Phantom(), rhs.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			lGrad, outGrad := mutAndRef(g, lp, op)
			lGrad.AddMul(outGrad, b)

			rGrad, outGrad := mutAndRef(g, rp, op)
			rGrad.AddMul(outGrad, a)
		})
	}
	return autodiff.PutTape(result, tape)
}
