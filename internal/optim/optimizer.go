// Package optim implements optimizers that apply tape gradients to models.
//
// An optimizer is a GradientProvider: Update lends it a completed Gradients
// store and calls model.Update(optimizer), and each parameter in turn asks
// the optimizer for its step. The optimizer removes the parameter's gradient
// from the store, folds it into any per-parameter state keyed by identity,
// and returns the step the parameter subtracts.
//
// Example usage:
//
//	optimizer := optim.NewSGD[float32](optim.SGDConfig{LR: 0.01, Momentum: 0.9})
//
//	for epoch := range epochs {
//	    loss := model.Forward(input.Trace(), target)
//	    grads := autodiff.Backward(loss)
//	    optimizer.Update(model, grads)
//	}
package optim

import (
	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
	"k8s.io/klog/v2"
)

// Optimizer is the interface shared by SGD and Adam.
type Optimizer[E tensor.Float] interface {
	autodiff.GradientProvider[E]

	// Update applies grads to every parameter of model and returns the ids
	// of parameters that had no gradient.
	Update(model autodiff.CanUpdateWithGradients[E], grads *autodiff.Gradients) []tensor.UniqueID

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate, e.g. for scheduling.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// lending holds the store an optimizer reads from during one Update.
type lending[E tensor.Float] struct {
	gradients *autodiff.Gradients
	missing   []tensor.UniqueID
}

// run lends grads to provider for the duration of model.Update.
func (l *lending[E]) run(
	name string,
	provider autodiff.GradientProvider[E],
	model autodiff.CanUpdateWithGradients[E],
	grads *autodiff.Gradients,
) []tensor.UniqueID {
	l.gradients = grads
	l.missing = nil
	defer func() { l.gradients = nil }()

	model.Update(provider)

	if len(l.missing) > 0 {
		klog.V(2).InfoS("parameters without gradient skipped", "optimizer", name, "count", len(l.missing), "ids", l.missing)
	}
	return l.missing
}

// take removes p's gradient from the lent store.
// Returns false, and remembers p, if p has no gradient.
func (l *lending[E]) take(p autodiff.Parameter[E]) (*tensor.Array[E], bool) {
	if l.gradients == nil || !l.gradients.Has(p) {
		l.missing = append(l.missing, p.ID())
		return nil, false
	}
	return autodiff.Remove[tensor.Array[E]](l.gradients, p), true
}
