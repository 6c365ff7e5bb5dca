package autodiff

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/tensor"
)

// Backward runs backpropagation from a one-element loss.
//
// It detaches the tape from loss, records a final op that seeds the loss
// gradient with 1, then executes the tape. Because the seed is recorded last
// it runs first.
//
// Example:
//
//	x := w.Trace()
//	loss := ops.Sum(ops.Square(x))
//	grads := autodiff.Backward(loss)
//	gw := autodiff.RefGradient[tensor.Array[float32]](grads, w) // 2*w
func Backward[E tensor.Float](loss Tensor[E, OwnedTape]) *Gradients {
	if loss.data.Len() != 1 {
		panic(fmt.Sprintf("backward: loss must have one element, got shape %v", loss.Shape()))
	}

	l, tape := loss.SplitTape()
	tape.AddBackwardOp(func(g *Gradients) {
		MutGradient[tensor.Array[E]](g, l.Phantom()).Fill(1)
	})
	return tape.Execute()
}
