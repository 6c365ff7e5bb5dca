package nn

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
	"golang.org/x/exp/rand"
)

// Sequential runs modules in order. Update is delegated to every child.
type Sequential[E tensor.Float] struct {
	modules []Module[E]
}

var _ Module[float32] = (*Sequential[float32])(nil)

// NewSequential creates a container running modules in order.
func NewSequential[E tensor.Float](modules ...Module[E]) *Sequential[E] {
	return &Sequential[E]{modules: modules}
}

// NewMLP builds Linear(in, hidden) → ReLU → Linear(hidden, out).
func NewMLP[E tensor.Float](in, hidden, out int, rng *rand.Rand) *Sequential[E] {
	return NewSequential[E](
		NewLinear[E](in, hidden, rng),
		NewReLU[E](),
		NewLinear[E](hidden, out, rng),
	)
}

// Add appends a module to the end.
func (s *Sequential[E]) Add(m Module[E]) {
	s.modules = append(s.modules, m)
}

// Forward runs every module's Forward.
func (s *Sequential[E]) Forward(x autodiff.Tensor[E, autodiff.OwnedTape]) autodiff.Tensor[E, autodiff.OwnedTape] {
	for _, m := range s.modules {
		x = m.Forward(x)
	}
	return x
}

// Infer runs every module's Infer.
func (s *Sequential[E]) Infer(x autodiff.Tensor[E, autodiff.NoneTape]) autodiff.Tensor[E, autodiff.NoneTape] {
	for _, m := range s.modules {
		x = m.Infer(x)
	}
	return x
}

// Update delegates to every module.
func (s *Sequential[E]) Update(p autodiff.GradientProvider[E]) {
	for _, m := range s.modules {
		m.Update(p)
	}
}

// Parameters returns the parameters of all modules in order.
func (s *Sequential[E]) Parameters() []autodiff.Tensor[E, autodiff.NoneTape] {
	var params []autodiff.Tensor[E, autodiff.NoneTape]
	for _, m := range s.modules {
		params = append(params, m.Parameters()...)
	}
	return params
}

// Len returns the number of modules.
func (s *Sequential[E]) Len() int {
	return len(s.modules)
}
