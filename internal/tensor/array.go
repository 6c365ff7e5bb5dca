// Package tensor provides identities, shapes, array payloads and devices.
//
// Nothing here knows about gradients. The autodiff package keys its
// gradient store on the capabilities declared here:
//   - HasUniqueID: a process-unique identity
//   - HasDevice[A]: a declared array type A and a device that can
//     allocate a zero-filled A on demand
package tensor

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/parallel"
)

// kernelConfig controls how element loops are split across goroutines.
var kernelConfig = parallel.DefaultConfig()

// SetParallelConfig replaces the config used by array kernels.
// Not safe to call while kernels are running.
func SetParallelConfig(cfg parallel.Config) {
	kernelConfig = cfg
}

// Array is a fixed-shape, row-major buffer of floats.
//
// The shape is fixed at creation; kernels panic on shape mismatch since
// that is always a caller bug.
type Array[E Float] struct {
	shape Shape
	data  []E
}

// NewArray allocates a zero-filled array.
func NewArray[E Float](shape Shape) (*Array[E], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Array[E]{
		shape: shape.Clone(),
		data:  make([]E, shape.NumElements()),
	}, nil
}

// FromSlice creates an array from a Go slice.
// The slice is copied into the array's memory.
func FromSlice[E Float](data []E, shape Shape) (*Array[E], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	a, err := NewArray[E](shape)
	if err != nil {
		return nil, err
	}
	copy(a.data, data)
	return a, nil
}

// Shape returns the array's shape.
func (a *Array[E]) Shape() Shape {
	return a.shape
}

// DType returns the element type.
func (a *Array[E]) DType() DataType {
	return DataTypeOf[E]()
}

// Len returns the number of elements.
func (a *Array[E]) Len() int {
	return len(a.data)
}

// Data returns the backing slice. Writes are visible to the array.
func (a *Array[E]) Data() []E {
	return a.data
}

// Clone returns a deep copy.
func (a *Array[E]) Clone() *Array[E] {
	data := make([]E, len(a.data))
	copy(data, a.data)
	return &Array[E]{shape: a.shape.Clone(), data: data}
}

// String formats the array as "float32[3][1 2 3]".
func (a *Array[E]) String() string {
	return fmt.Sprintf("%s%v%v", a.DType(), []int(a.shape), a.data)
}

// Fill sets every element to v.
func (a *Array[E]) Fill(v E) {
	for i := range a.data {
		a.data[i] = v
	}
}

// AddAssign computes a += b.
func (a *Array[E]) AddAssign(b *Array[E]) {
	mustMatch("AddAssign", a.shape, b.shape)
	dst, src := a.data, b.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] += src[i]
		}
	})
}

// SubAssign computes a -= b.
func (a *Array[E]) SubAssign(b *Array[E]) {
	mustMatch("SubAssign", a.shape, b.shape)
	dst, src := a.data, b.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] -= src[i]
		}
	})
}

// MulAssign computes a *= b element-wise.
func (a *Array[E]) MulAssign(b *Array[E]) {
	mustMatch("MulAssign", a.shape, b.shape)
	dst, src := a.data, b.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] *= src[i]
		}
	})
}

// Scale computes a *= s.
func (a *Array[E]) Scale(s E) {
	dst := a.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] *= s
		}
	})
}

// AddScaled computes a += s * b.
func (a *Array[E]) AddScaled(b *Array[E], s E) {
	mustMatch("AddScaled", a.shape, b.shape)
	dst, src := a.data, b.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] += s * src[i]
		}
	})
}

// AddMul computes a += b * c element-wise.
// This is the chain-rule step of most backward ops.
func (a *Array[E]) AddMul(b, c *Array[E]) {
	mustMatch("AddMul", a.shape, b.shape)
	mustMatch("AddMul", a.shape, c.shape)
	dst, x, y := a.data, b.data, c.data
	parallel.Range(len(dst), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] += x[i] * y[i]
		}
	})
}

// Map returns a new array with f applied to every element.
func (a *Array[E]) Map(f func(E) E) *Array[E] {
	out := &Array[E]{shape: a.shape.Clone(), data: make([]E, len(a.data))}
	src, dst := a.data, out.data
	parallel.Range(len(src), kernelConfig, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src[i])
		}
	})
	return out
}

// Sum returns the sum of all elements.
func (a *Array[E]) Sum() E {
	var s E
	for _, v := range a.data {
		s += v
	}
	return s
}
