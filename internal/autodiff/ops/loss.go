package ops

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// MSE computes mean((pred - target)²).
//
// It is composed from Sub, Square and Mean, so it records three backward ops.
func MSE[E tensor.Float, T autodiff.Tape](pred autodiff.Tensor[E, T], target autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, T] {
	return Mean(Square(Sub(pred, target)))
}
