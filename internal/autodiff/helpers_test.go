package autodiff_test

import (
	"github.com/born-ml/gradtape/internal/tensor"
)

// vec5 is a statically shaped entity whose gradient is a [5]float32.
type vec5 struct {
	id tensor.UniqueID
}

func newVec5() vec5 { return vec5{id: tensor.NewUniqueID()} }

func (v vec5) ID() tensor.UniqueID { return v.id }

func (vec5) Device() tensor.Device[[5]float32] { return tensor.Static[[5]float32]{} }

// vec3 is a statically shaped entity whose gradient is a [3]float32.
type vec3 struct {
	id tensor.UniqueID
}

func newVec3() vec3 { return vec3{id: tensor.NewUniqueID()} }

func (v vec3) ID() tensor.UniqueID { return v.id }

func (vec3) Device() tensor.Device[[3]float32] { return tensor.Static[[3]float32]{} }
