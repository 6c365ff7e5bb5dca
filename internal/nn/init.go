package nn

import (
	"math"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
	"golang.org/x/exp/rand"
)

// Xavier (Glorot) initialization for weights.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier[E tensor.Float](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand) autodiff.Tensor[E, autodiff.NoneTape] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t, err := autodiff.Zeros[E](shape)
	if err != nil {
		panic(err)
	}

	data := t.Values()
	for i := range data {
		data[i] = E((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// NewRand returns a deterministic random source for initialization.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
