package autodiff

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/tensor"
)

// Tensor is an array with an identity and a tape capability T.
//
// T is NoneTape for plain values and parameters, and OwnedTape for values
// on a differentiable path. Tensors are small values: copies share the
// array and the identity.
//
// Example:
//
//	w, _ := autodiff.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//	x := w.Trace()               // same identity, now carries an OwnedTape
//	y := ops.Sum(ops.Square(x))  // records two backward ops
//	grads := autodiff.Backward(y)
type Tensor[E tensor.Float, T Tape] struct {
	id   tensor.UniqueID
	data *tensor.Array[E]
	tape T
}

// NewTensor wraps data in a tensor with a fresh identity.
func NewTensor[E tensor.Float](data *tensor.Array[E]) Tensor[E, NoneTape] {
	return Tensor[E, NoneTape]{
		id:   tensor.NewUniqueID(),
		data: data,
	}
}

// FromSlice creates a tensor from a Go slice.
func FromSlice[E tensor.Float](data []E, shape tensor.Shape) (Tensor[E, NoneTape], error) {
	arr, err := tensor.FromSlice(data, shape)
	if err != nil {
		return Tensor[E, NoneTape]{}, err
	}
	return NewTensor(arr), nil
}

// Zeros creates a zero-filled tensor.
func Zeros[E tensor.Float](shape tensor.Shape) (Tensor[E, NoneTape], error) {
	arr, err := tensor.NewArray[E](shape)
	if err != nil {
		return Tensor[E, NoneTape]{}, err
	}
	return NewTensor(arr), nil
}

// Scalar creates a scalar tensor holding v.
func Scalar[E tensor.Float](v E) Tensor[E, NoneTape] {
	arr, _ := tensor.FromSlice([]E{v}, tensor.Shape{})
	return NewTensor(arr)
}

// ID returns the tensor's identity.
func (t Tensor[E, T]) ID() tensor.UniqueID {
	return t.id
}

// Device returns a device that allocates zero arrays of the tensor's shape.
func (t Tensor[E, T]) Device() tensor.Device[tensor.Array[E]] {
	return tensor.CPU[E]{Shape: t.data.Shape()}
}

// Data returns the underlying array.
func (t Tensor[E, T]) Data() *tensor.Array[E] {
	return t.data
}

// Values returns the underlying elements.
func (t Tensor[E, T]) Values() []E {
	return t.data.Data()
}

// Shape returns the tensor's shape.
func (t Tensor[E, T]) Shape() tensor.Shape {
	return t.data.Shape()
}

// Item returns the single element of a one-element tensor.
func (t Tensor[E, T]) Item() E {
	if t.data.Len() != 1 {
		panic(fmt.Sprintf("Item: tensor %v has %d elements", t.id, t.data.Len()))
	}
	return t.data.Data()[0]
}

// Tape returns the tensor's tape capability.
func (t Tensor[E, T]) Tape() T {
	return t.tape
}

// Phantom returns a data-free handle sharing the tensor's identity.
func (t Tensor[E, T]) Phantom() tensor.Phantom[tensor.Array[E]] {
	return tensor.PhantomOf[tensor.Array[E]](t)
}

// Trace returns the tensor with a new OwnedTape attached. The result keeps
// the tensor's identity, so gradients recorded for it land on the tensor.
func (t Tensor[E, T]) Trace() Tensor[E, OwnedTape] {
	tape := NewOwnedTape()
	tape.setHolder(t.id)
	return Tensor[E, OwnedTape]{id: t.id, data: t.data, tape: tape}
}

// SplitTape detaches the tape, returning a NoneTape view and the tape.
//
// Panics with ErrTapeMoved if t's tape was already moved to another tensor
// by PutTape, as happens when an op consumes t and returns its output.
func (t Tensor[E, T]) SplitTape() (Tensor[E, NoneTape], T) {
	t.tape.checkHolder(t.id)
	return Tensor[E, NoneTape]{id: t.id, data: t.data}, t.tape
}

// String formats the tensor as "#id float32[..][..]".
func (t Tensor[E, T]) String() string {
	return t.id.String() + " " + t.data.String()
}

// PutTape attaches tape to t, making t the tape's only holder.
func PutTape[E tensor.Float, T Tape](t Tensor[E, NoneTape], tape T) Tensor[E, T] {
	tape.setHolder(t.id)
	return Tensor[E, T]{id: t.id, data: t.data, tape: tape}
}
