package optim

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[E tensor.Float] struct {
	lending[E]
	lr         float64
	momentum   float64
	velocities map[tensor.UniqueID]*tensor.Array[E]
}

var _ Optimizer[float32] = (*SGD[float32])(nil)

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[E tensor.Float](config SGDConfig) *SGD[E] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[E]{
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[tensor.UniqueID]*tensor.Array[E]),
	}
}

// Update applies grads to model. See Optimizer.
func (s *SGD[E]) Update(model autodiff.CanUpdateWithGradients[E], grads *autodiff.Gradients) []tensor.UniqueID {
	return s.run("sgd", s, model, grads)
}

// Gradient returns lr * gradient, or lr * velocity with momentum.
func (s *SGD[E]) Gradient(p autodiff.Parameter[E]) (*tensor.Array[E], bool) {
	grad, ok := s.take(p)
	if !ok {
		return nil, false
	}

	if s.momentum == 0 {
		grad.Scale(E(s.lr))
		return grad, true
	}

	velocity, exists := s.velocities[p.ID()]
	if !exists {
		velocity = p.Device().Zeros()
		s.velocities[p.ID()] = velocity
	}

	// velocity = momentum * velocity + grad
	velocity.Scale(E(s.momentum))
	velocity.AddAssign(grad)

	// reuse the gradient buffer for lr * velocity
	copy(grad.Data(), velocity.Data())
	grad.Scale(E(s.lr))
	return grad, true
}

// GetLR returns the current learning rate.
func (s *SGD[E]) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[E]) SetLR(lr float64) {
	s.lr = lr
}

// Velocity returns the momentum buffer kept for id, if any.
func (s *SGD[E]) Velocity(id tensor.UniqueID) (*tensor.Array[E], bool) {
	v, ok := s.velocities[id]
	return v, ok
}
