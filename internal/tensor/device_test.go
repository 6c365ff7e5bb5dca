package tensor_test

import (
	"testing"

	"github.com/born-ml/gradtape/internal/tensor"
	"github.com/stretchr/testify/assert"
)

type vec5 struct {
	id tensor.UniqueID
}

func (v vec5) ID() tensor.UniqueID { return v.id }

func (vec5) Device() tensor.Device[[5]float32] { return tensor.Static[[5]float32]{} }

func TestCPU_Zeros(t *testing.T) {
	d := tensor.CPU[float64]{Shape: tensor.Shape{2, 2}}
	z := d.Zeros()
	assert.Equal(t, tensor.Shape{2, 2}, z.Shape())
	assert.Equal(t, []float64{0, 0, 0, 0}, z.Data())
	assert.Equal(t, tensor.CPUKind, d.Kind())
	assert.Equal(t, "CPU", d.Kind().String())
}

func TestCPU_ZerosInvalidShapePanics(t *testing.T) {
	d := tensor.CPU[float32]{Shape: tensor.Shape{-1}}
	assert.Panics(t, func() { d.Zeros() })
}

func TestStatic_Zeros(t *testing.T) {
	z := tensor.Static[[5]float32]{}.Zeros()
	assert.Equal(t, [5]float32{}, *z)
}

func TestPhantom_SharesIdentity(t *testing.T) {
	v := vec5{id: tensor.NewUniqueID()}
	p := tensor.PhantomOf[[5]float32](v)

	assert.Equal(t, v.ID(), p.ID())
	assert.Equal(t, [5]float32{}, *p.Device().Zeros())
}
