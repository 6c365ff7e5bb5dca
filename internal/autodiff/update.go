package autodiff

import "github.com/born-ml/gradtape/internal/tensor"

// Parameter is anything an optimizer can fetch a gradient for.
type Parameter[E tensor.Float] interface {
	tensor.HasDevice[tensor.Array[E]]
}

// GradientProvider hands out the update step for a parameter.
//
// Implementations usually wrap a completed Gradients store and may keep
// per-parameter state keyed by identity, such as momentum. A parameter that
// did not take part in the loss has no gradient; Gradient reports false for
// it instead of failing.
type GradientProvider[E tensor.Float] interface {
	// Gradient returns the array to subtract from p.
	Gradient(p Parameter[E]) (*tensor.Array[E], bool)
}

// CanUpdateWithGradients is implemented by models and their parameters.
// Leaves subtract the provided step from their data; composites call Update
// on each child.
type CanUpdateWithGradients[E tensor.Float] interface {
	Update(p GradientProvider[E])
}

// Update subtracts the step provided for t from t's data in place.
// Does nothing if the provider has no gradient for t.
func (t Tensor[E, T]) Update(p GradientProvider[E]) {
	step, ok := p.Gradient(t)
	if !ok {
		return
	}
	t.data.SubAssign(step)
}
