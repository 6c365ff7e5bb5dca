// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the array payloads, identities and devices used by
// the gradient tape.
//
// The package defines:
//   - UniqueID: process-wide identity of a differentiable entity
//   - Array[E]: flat row-major float buffer with in-place kernels
//   - Device[A], HasDevice[A]: allocation of zero gradients of type A
//   - Phantom[A]: data-free handle carrying another entity's identity
//
// Example:
//
//	a, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
//	b := a.Clone()
//	b.AddScaled(a, 0.5) // b = b + 0.5*a
package tensor

import (
	"github.com/born-ml/gradtape/internal/parallel"
	"github.com/born-ml/gradtape/internal/tensor"
)

// Float is the element constraint for arrays.
type Float = tensor.Float

// DataType represents the element type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3} is a 2×3 matrix.
type Shape = tensor.Shape

// UniqueID identifies a differentiable entity.
type UniqueID = tensor.UniqueID

// HasUniqueID is implemented by anything with an identity.
type HasUniqueID = tensor.HasUniqueID

// Array is a fixed-shape row-major buffer.
type Array[E Float] = tensor.Array[E]

// DeviceKind names the device an array lives on.
type DeviceKind = tensor.DeviceKind

// Device allocates zero-filled arrays of type A.
type Device[A any] = tensor.Device[A]

// HasDevice is the capability the gradient store keys on.
type HasDevice[A any] = tensor.HasDevice[A]

// CPU allocates Array[E] of a fixed shape.
type CPU[E Float] = tensor.CPU[E]

// Static allocates statically shaped value arrays such as [5]float32.
type Static[A any] = tensor.Static[A]

// Phantom is a copyable handle carrying another entity's identity.
type Phantom[A any] = tensor.Phantom[A]

// ParallelConfig controls how element kernels split work.
type ParallelConfig = parallel.Config

// NewUniqueID returns a fresh identity.
func NewUniqueID() UniqueID {
	return tensor.NewUniqueID()
}

// NewArray creates a zero-filled array.
func NewArray[E Float](shape Shape) (*Array[E], error) {
	return tensor.NewArray[E](shape)
}

// FromSlice creates an array holding a copy of data.
func FromSlice[E Float](data []E, shape Shape) (*Array[E], error) {
	return tensor.FromSlice(data, shape)
}

// PhantomOf returns a phantom of e.
func PhantomOf[A any](e HasDevice[A]) Phantom[A] {
	return tensor.PhantomOf(e)
}

// DefaultParallelConfig returns the default kernel parallelism.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SetParallelConfig replaces the kernel parallelism used by all arrays.
func SetParallelConfig(cfg ParallelConfig) {
	tensor.SetParallelConfig(cfg)
}
