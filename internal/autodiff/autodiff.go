// Package autodiff implements reverse-mode automatic differentiation with a
// gradient tape.
//
// Architecture:
//   - GradientTape: ordered log of BackwardOp closures, run newest first
//   - Gradients: identity-keyed store of type-erased gradient arrays with
//     lazy zero allocation and checked typed access
//   - Tape capability: OwnedTape records, NoneTape does nothing; ops are
//     generic over T Tape so one implementation serves both modes
//   - GradientProvider / CanUpdateWithGradients: the contract optimizers and
//     models use to apply gradients
//
// Operation contract: a differentiable op computes its output eagerly, then,
// if its input carries an OwnedTape, records one backward closure covering
// every differentiable input before returning the output. The closure captures
// what it needs (input values, phantoms of input and output identities) and
// accumulates into input gradients with MutAndRef. Ops may assume only that
// an op recorded later runs earlier.
//
// Usage:
//
//	w, _ := autodiff.FromSlice([]float32{2}, tensor.Shape{1})
//	y := ops.Sum(ops.Square(w.Trace())) // y = w²
//	grads := autodiff.Backward(y)
//	autodiff.RefGradient[tensor.Array[float32]](grads, w) // dy/dw = 2w = 4
package autodiff
