package ops_test

import (
	"testing"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/autodiff/ops"
	"github.com/born-ml/gradtape/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type array = tensor.Array[float64]

func vec(t *testing.T, vals ...float64) autodiff.Tensor[float64, autodiff.NoneTape] {
	t.Helper()
	v, err := autodiff.FromSlice(vals, tensor.Shape{len(vals)})
	require.NoError(t, err)
	return v
}

func mat(t *testing.T, rows, cols int, vals ...float64) autodiff.Tensor[float64, autodiff.NoneTape] {
	t.Helper()
	m, err := autodiff.FromSlice(vals, tensor.Shape{rows, cols})
	require.NoError(t, err)
	return m
}

func gradOf(grads *autodiff.Gradients, p autodiff.Tensor[float64, autodiff.NoneTape]) []float64 {
	return autodiff.RefGradient[array](grads, p).Data()
}

func TestAdd(t *testing.T) {
	a, b := vec(t, 1, 2, 3), vec(t, 4, 5, 6)

	y := ops.Add(a.Trace(), b)
	assert.Equal(t, []float64{5, 7, 9}, y.Values())

	grads := autodiff.Backward(ops.Sum(y))
	assert.Equal(t, []float64{1, 1, 1}, gradOf(grads, a))
	assert.Equal(t, []float64{1, 1, 1}, gradOf(grads, b))
}

func TestSub(t *testing.T) {
	a, b := vec(t, 1, 2), vec(t, 4, 6)

	y := ops.Sub(a.Trace(), b)
	assert.Equal(t, []float64{-3, -4}, y.Values())

	grads := autodiff.Backward(ops.Sum(y))
	assert.Equal(t, []float64{1, 1}, gradOf(grads, a))
	assert.Equal(t, []float64{-1, -1}, gradOf(grads, b))
}

func TestMul(t *testing.T) {
	a, b := vec(t, 1, 2, 3), vec(t, 4, 5, 6)

	y := ops.Mul(a.Trace(), b)
	assert.Equal(t, []float64{4, 10, 18}, y.Values())

	grads := autodiff.Backward(ops.Sum(y))
	assert.Equal(t, []float64{4, 5, 6}, gradOf(grads, a))
	assert.Equal(t, []float64{1, 2, 3}, gradOf(grads, b))
}

// TestMul_SameTensorBothSides computes sum(x * x) with x traced on one side
// and borrowed on the other: both contributions land on x.
func TestMul_SameTensorBothSides(t *testing.T) {
	x := vec(t, 1, -2, 3)

	grads := autodiff.Backward(ops.Sum(ops.Mul(x.Trace(), x)))
	assert.Equal(t, []float64{2, -4, 6}, gradOf(grads, x))
}

func TestUnaryOps(t *testing.T) {
	tests := []struct {
		name     string
		op       func(autodiff.Tensor[float64, autodiff.OwnedTape]) autodiff.Tensor[float64, autodiff.OwnedTape]
		wantOut  []float64
		wantGrad []float64
	}{
		{
			name:     "negate",
			op:       ops.Negate[float64, autodiff.OwnedTape],
			wantOut:  []float64{1, -0, -2},
			wantGrad: []float64{-1, -1, -1},
		},
		{
			name: "scale",
			op: func(x autodiff.Tensor[float64, autodiff.OwnedTape]) autodiff.Tensor[float64, autodiff.OwnedTape] {
				return ops.Scale(x, 3)
			},
			wantOut:  []float64{-3, 0, 6},
			wantGrad: []float64{3, 3, 3},
		},
		{
			name:     "square",
			op:       ops.Square[float64, autodiff.OwnedTape],
			wantOut:  []float64{1, 0, 4},
			wantGrad: []float64{-2, 0, 4},
		},
		{
			name:     "relu",
			op:       ops.ReLU[float64, autodiff.OwnedTape],
			wantOut:  []float64{0, 0, 2},
			wantGrad: []float64{0, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := vec(t, -1, 0, 2)
			y := tt.op(x.Trace())
			assert.Equal(t, tt.wantOut, y.Values())

			grads := autodiff.Backward(ops.Sum(y))
			assert.Equal(t, tt.wantGrad, gradOf(grads, x))
		})
	}
}

func TestMean(t *testing.T) {
	x := vec(t, 1, 2, 3, 6)

	y := ops.Mean(x.Trace())
	assert.InDelta(t, 3.0, y.Item(), 1e-12)
	assert.Equal(t, tensor.Shape{}, y.Shape())

	grads := autodiff.Backward(y)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, gradOf(grads, x))
}

func TestMatMulTranspose_Vector(t *testing.T) {
	// w: [2, 3], x: [3]
	w := mat(t, 2, 3,
		1, 2, 3,
		4, 5, 6)
	x := vec(t, 1, 0, -1)

	y := ops.MatMulTranspose(x.Trace(), w)
	assert.Equal(t, tensor.Shape{2}, y.Shape())
	assert.Equal(t, []float64{-2, -2}, y.Values())

	grads := autodiff.Backward(ops.Sum(y))
	// d/dx sum(Wx) = column sums of W
	assert.Equal(t, []float64{5, 7, 9}, gradOf(grads, x))
	// d/dW sum(Wx) = rows of x
	assert.Equal(t, []float64{1, 0, -1, 1, 0, -1}, gradOf(grads, w))
}

func TestMatMulTranspose_Batch(t *testing.T) {
	w := mat(t, 1, 2, 2, 3)
	x := mat(t, 2, 2,
		1, 1,
		2, 0)

	y := ops.MatMulTranspose(x.Trace(), w)
	assert.Equal(t, tensor.Shape{2, 1}, y.Shape())
	assert.Equal(t, []float64{5, 4}, y.Values())

	grads := autodiff.Backward(ops.Sum(y))
	assert.Equal(t, []float64{2, 3, 2, 3}, gradOf(grads, x))
	assert.Equal(t, []float64{3, 1}, gradOf(grads, w))
}

func TestMatMulTranspose_ShapeMismatchPanics(t *testing.T) {
	w := mat(t, 2, 3, 1, 2, 3, 4, 5, 6)
	assert.Panics(t, func() { ops.MatMulTranspose(vec(t, 1, 2).Trace(), w) })
	assert.Panics(t, func() { ops.MatMulTranspose(vec(t, 1, 2, 3).Trace(), vec(t, 1, 2, 3)) })
}

func TestAddBroadcast(t *testing.T) {
	x := mat(t, 2, 2,
		1, 2,
		3, 4)
	b := vec(t, 10, 20)

	y := ops.AddBroadcast(x.Trace(), b)
	assert.Equal(t, []float64{11, 22, 13, 24}, y.Values())

	grads := autodiff.Backward(ops.Sum(ops.Square(y)))
	assert.Equal(t, []float64{22, 44, 26, 48}, gradOf(grads, x))
	assert.Equal(t, []float64{48, 92}, gradOf(grads, b))
}

func TestMSE(t *testing.T) {
	pred, target := vec(t, 1, 2, 3), vec(t, 1, 0, 0)

	loss := ops.MSE(pred.Trace(), target)
	assert.InDelta(t, 13.0/3.0, loss.Item(), 1e-12)
	assert.Equal(t, 3, loss.Tape().NumOps())

	grads := autodiff.Backward(loss)
	// d/dpred = 2 (pred - target) / n
	got := gradOf(grads, pred)
	want := []float64{0, 4.0 / 3.0, 2}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}
}

func TestBinaryOps_ShapeMismatchPanics(t *testing.T) {
	a, b := vec(t, 1, 2), vec(t, 1, 2, 3)
	assert.Panics(t, func() { ops.Add(a.Trace(), b) })
	assert.Panics(t, func() { ops.Sub(a.Trace(), b) })
	assert.Panics(t, func() { ops.Mul(a.Trace(), b) })
	assert.Panics(t, func() { ops.AddBroadcast(a.Trace(), b) })
}

// TestNoneTape_RecordsNothing runs the same ops in inference mode.
func TestNoneTape_RecordsNothing(t *testing.T) {
	x, w := vec(t, 1, 2), vec(t, 3, 4)

	y := ops.Sum(ops.ReLU(ops.Mul(x, w)))
	assert.InDelta(t, 11.0, y.Item(), 1e-12)
	assert.False(t, y.Tape().OwnsTape())
}

// TestOpsRecordOneClosureEach checks the op author contract on the tape.
func TestOpsRecordOneClosureEach(t *testing.T) {
	x, w := vec(t, 1, 2), vec(t, 3, 4)

	y := ops.Add(x.Trace(), w)
	assert.Equal(t, 1, y.Tape().NumOps())
	y = ops.Mul(y, w)
	assert.Equal(t, 2, y.Tape().NumOps())
	s := ops.Sum(ops.Negate(y))
	assert.Equal(t, 4, s.Tape().NumOps())
}

// TestParameterUsedTwiceAccumulates uses w in two ops of one computation.
func TestParameterUsedTwiceAccumulates(t *testing.T) {
	x, w := vec(t, 1, 2), vec(t, 3, 4)

	// y = sum((x + w) * w) ; dy/dw = x + 2w ; dy/dx = w
	y := ops.Sum(ops.Mul(ops.Add(x.Trace(), w), w))
	grads := autodiff.Backward(y)

	assert.Equal(t, []float64{7, 10}, gradOf(grads, w))
	assert.Equal(t, []float64{3, 4}, gradOf(grads, x))
}

func TestOps_Float32(t *testing.T) {
	x, err := autodiff.FromSlice([]float32{1, 2}, tensor.Shape{2})
	require.NoError(t, err)

	grads := autodiff.Backward(ops.Sum(ops.Square(x.Trace())))
	assert.Equal(t, []float32{2, 4}, autodiff.RefGradient[tensor.Array[float32]](grads, x).Data())
}

// TestTracedTensorReuseFails checks that a traced tensor cannot feed a
// second op once the first op has moved its tape to the output.
func TestTracedTensorReuseFails(t *testing.T) {
	x := vec(t, 1, 2, 3)
	xt := x.Trace()
	_ = ops.Square(xt)

	err := autodiff.Catch(func() {
		autodiff.Backward(ops.Sum(ops.Negate(xt)))
	})
	require.ErrorIs(t, err, autodiff.ErrTapeMoved)
}

// TestTracedValueUsedTwice checks the supported way of using a traced value
// in two places: the tape continues on one use, the other is the NoneTape view.
func TestTracedValueUsedTwice(t *testing.T) {
	x := vec(t, 1, 2, 3)
	plain, tape := x.Trace().SplitTape()

	y := ops.Add(ops.Square(autodiff.PutTape(plain, tape)), plain)
	grads := autodiff.Backward(ops.Sum(y))

	assert.Equal(t, []float64{3, 5, 7}, gradOf(grads, x))
}
