package optim

import (
	"math"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// t counts Update calls. Moments are keyed by parameter identity.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[E tensor.Float] struct {
	lending[E]
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int                                  // Timestep for bias correction
	m     map[tensor.UniqueID]*tensor.Array[E] // First moment estimates
	v     map[tensor.UniqueID]*tensor.Array[E] // Second moment estimates
}

var _ Optimizer[float32] = (*Adam[float32])(nil)

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling unset fields with defaults.
func NewAdam[E tensor.Float](config AdamConfig) *Adam[E] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[E]{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[tensor.UniqueID]*tensor.Array[E]),
		v:     make(map[tensor.UniqueID]*tensor.Array[E]),
	}
}

// Update advances the timestep and applies grads to model. See Optimizer.
func (a *Adam[E]) Update(model autodiff.CanUpdateWithGradients[E], grads *autodiff.Gradients) []tensor.UniqueID {
	a.t++
	return a.run("adam", a, model, grads)
}

// Gradient folds p's gradient into its moments and returns the Adam step.
func (a *Adam[E]) Gradient(p autodiff.Parameter[E]) (*tensor.Array[E], bool) {
	grad, ok := a.take(p)
	if !ok {
		return nil, false
	}

	id := p.ID()
	m, exists := a.m[id]
	if !exists {
		m = p.Device().Zeros()
		a.m[id] = m
	}
	v, exists := a.v[id]
	if !exists {
		v = p.Device().Zeros()
		a.v[id] = v
	}

	biasCorrection1 := 1.0 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1.0 - math.Pow(a.beta2, float64(a.t))

	gData, mData, vData := grad.Data(), m.Data(), v.Data()
	for i, gi := range gData {
		g := float64(gi)
		mi := a.beta1*float64(mData[i]) + (1.0-a.beta1)*g
		vi := a.beta2*float64(vData[i]) + (1.0-a.beta2)*g*g
		mData[i], vData[i] = E(mi), E(vi)

		mHat := mi / biasCorrection1
		vHat := vi / biasCorrection2

		// the gradient buffer becomes the step
		gData[i] = E(a.lr * mHat / (math.Sqrt(vHat) + a.eps))
	}
	return grad, true
}

// GetLR returns the current learning rate.
func (a *Adam[E]) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam[E]) SetLR(lr float64) {
	a.lr = lr
}

// GetTimestep returns the number of Update calls so far.
func (a *Adam[E]) GetTimestep() int {
	return a.t
}
