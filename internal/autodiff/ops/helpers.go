package ops

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
)

// mutAndRef fetches (input gradient for writing, output gradient for reading).
func mutAndRef[E tensor.Float](
	g *autodiff.Gradients,
	in, out tensor.Phantom[tensor.Array[E]],
) (*tensor.Array[E], *tensor.Array[E]) {
	return autodiff.MutAndRef[tensor.Array[E], tensor.Array[E]](g, in, out)
}

func mustSameShape[E tensor.Float](op string, a, b *tensor.Array[E]) {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, a.Shape(), b.Shape()))
	}
}

// scalarArray allocates a one-element array of shape [] holding v.
func scalarArray[E tensor.Float](v E) *tensor.Array[E] {
	out, _ := tensor.FromSlice([]E{v}, tensor.Shape{})
	return out
}

// addConst adds v to every element of dst.
func addConst[E tensor.Float](dst *tensor.Array[E], v E) {
	d := dst.Data()
	for i := range d {
		d[i] += v
	}
}
