package autodiff_test

import (
	"testing"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensor_FreshIdentity(t *testing.T) {
	a, err := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	b, err := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID(), "equal values, distinct identities")
}

func TestTensor_FromSliceShapeMismatch(t *testing.T) {
	_, err := autodiff.FromSlice([]float32{1, 2, 3}, tensor.Shape{2})
	require.Error(t, err)
}

func TestTensor_TraceKeepsIdentityAndData(t *testing.T) {
	w, _ := autodiff.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	x := w.Trace()

	assert.Equal(t, w.ID(), x.ID())
	assert.Same(t, w.Data(), x.Data())
	assert.True(t, x.Tape().OwnsTape())
	assert.False(t, w.Tape().OwnsTape())
}

func TestTensor_SplitAndPutTape(t *testing.T) {
	w, _ := autodiff.FromSlice([]float64{4}, tensor.Shape{1})
	x := w.Trace()

	plain, tape := x.SplitTape()
	assert.Equal(t, x.ID(), plain.ID())
	assert.True(t, tape.OwnsTape())

	back := autodiff.PutTape(plain, tape)
	assert.Equal(t, x.ID(), back.ID())
	assert.True(t, back.Tape().OwnsTape())
}

func TestTensor_SplitAfterTapeMovedFails(t *testing.T) {
	w, _ := autodiff.FromSlice([]float64{4}, tensor.Shape{1})
	x := w.Trace()

	_, tape := x.SplitTape()
	out := autodiff.PutTape(autodiff.Scalar(1.0), tape)

	err := autodiff.Catch(func() { x.SplitTape() })
	require.ErrorIs(t, err, autodiff.ErrTapeMoved)

	_, back := out.SplitTape()
	assert.Equal(t, 0, back.NumOps())
}

func TestTensor_PutTapeBackRestoresHolder(t *testing.T) {
	w, _ := autodiff.FromSlice([]float64{4}, tensor.Shape{1})
	x := w.Trace()

	plain, tape := x.SplitTape()
	x = autodiff.PutTape(plain, tape)

	assert.NotPanics(t, func() { x.SplitTape() })
}

func TestTensor_DeviceAllocatesShape(t *testing.T) {
	w, _ := autodiff.Zeros[float32](tensor.Shape{2, 2})
	z := w.Device().Zeros()
	assert.Equal(t, tensor.Shape{2, 2}, z.Shape())
	assert.NotSame(t, w.Data(), z)
}

func TestTensor_PhantomAddressesSameSlot(t *testing.T) {
	w, _ := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	g := autodiff.NewGradients()

	autodiff.MutGradient[tensor.Array[float32]](g, w.Phantom()).Fill(5)
	assert.Equal(t, []float32{5, 5}, autodiff.RefGradient[tensor.Array[float32]](g, w).Data())
}

func TestTensor_Item(t *testing.T) {
	assert.InDelta(t, 2.5, autodiff.Scalar(2.5).Item(), 1e-12)

	v, _ := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	assert.Panics(t, func() { v.Item() })
}

func TestBackward_SeedsLoss(t *testing.T) {
	w := autodiff.Scalar[float32](3)
	grads := autodiff.Backward(w.Trace())

	assert.Equal(t, []float32{1}, autodiff.RefGradient[tensor.Array[float32]](grads, w).Data())
}

func TestBackward_NonScalarPanics(t *testing.T) {
	w, _ := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	assert.Panics(t, func() { autodiff.Backward(w.Trace()) })
}

// fixedProvider returns the same step for every parameter it knows.
type fixedProvider struct {
	steps map[tensor.UniqueID]*tensor.Array[float32]
}

func (p fixedProvider) Gradient(param autodiff.Parameter[float32]) (*tensor.Array[float32], bool) {
	step, ok := p.steps[param.ID()]
	return step, ok
}

func TestTensor_Update(t *testing.T) {
	used, _ := autodiff.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	unused, _ := autodiff.FromSlice([]float32{7, 8}, tensor.Shape{2})
	step, _ := tensor.FromSlice([]float32{0.5, 0.5, 1}, tensor.Shape{3})

	p := fixedProvider{steps: map[tensor.UniqueID]*tensor.Array[float32]{used.ID(): step}}
	used.Update(p)
	unused.Update(p)

	assert.Equal(t, []float32{0.5, 1.5, 2}, used.Values())
	assert.Equal(t, []float32{7, 8}, unused.Values(), "absent gradient leaves the parameter alone")
}

func TestTensor_String(t *testing.T) {
	w, _ := autodiff.FromSlice([]float32{1}, tensor.Shape{1})
	assert.Equal(t, w.ID().String()+" float32[1][1]", w.String())
}
