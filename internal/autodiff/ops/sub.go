package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Sub computes lhs - rhs element-wise.
//
// Backward pass:
//   - grad_a += outputGrad
//   - grad_b -= outputGrad
func Sub[E tensor.Float, T autodiff.Tape](lhs autodiff.Tensor[E, T], rhs autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	mustSameShape("Sub", lhs.Data(), rhs.Data())

	out := lhs.Data().Clone()
	out.SubAssign(rhs.Data())

	l, tape := lhs.SplitTape()
	result := autodiff.NewTensor(out)
	if tape.OwnsTape() {
		lp, rp, op := l.Phantom(), rhs.Phantom(), result.Phantom()
		tape.AddBackwardOp(func(g *autodiff.Gradients) {
			lGrad, outGrad := mutAndRef(g, lp, op)
			lGrad.AddAssign(outGrad)

			rGrad, outGrad := mutAndRef(g, rp, op)
			rGrad.SubAssign(outGrad)
		})
	}
	return autodiff.PutTape(result, tape)
}
