// Package ops implements differentiable tensor operations.
//
// Every op is generic over the tape capability T of its traced operand:
//   - T = autodiff.OwnedTape: the op records one backward closure and the
//     output carries the tape onward
//   - T = autodiff.NoneTape: the op only computes its output
//
// Binary ops take the traced operand by value (the tape moves into the
// output) and the other operand as a NoneTape tensor, typically a
// parameter. The backward closure still accumulates into the untraced
// operand's gradient, addressed by its identity.
//
// Supported operations:
//   - Add, Sub, Mul: element-wise, same shape
//   - Negate, Scale, Square, ReLU: element-wise unary
//   - Sum, Mean: reduce to a scalar
//   - MatMulTranspose: x @ wᵀ for x of shape [in] or [batch, in]
//   - AddBroadcast: adds a vector to every row
//   - MSE: mean squared error, composed from Sub, Square and Mean
package ops
