package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Add computes lhs + rhs element-wise.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a += outputGrad
//   - d(a+b)/db = 1, so grad_b += outputGrad
func Add[E tensor.Float, T autodiff.Tape](lhs autodiff.Tensor[E, T], rhs autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	mustSameShape("Add", lhs.Data(), rhs.Data())

	out := lhs.Data().Clone()
	out.AddAssign(rhs.Data())

	l, tape := lhs.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		lp, rp, op := l.Phantom(), rhs.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			lGrad, outGrad := mutAndRef(g, lp, op)
			lGrad.AddAssign(outGrad)

			rGrad, outGrad := mutAndRef(g, rp, op)
			rGrad.AddAssign(outGrad)
		})
	}
	return autodiff.PutTape(result, tape)
}
