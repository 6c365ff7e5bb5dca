package tensor

import "fmt"

// DeviceKind names where a device allocates memory.
type DeviceKind int

// Supported device kinds.
const (
	CPUKind DeviceKind = iota
)

// String returns a human-readable device name.
func (d DeviceKind) String() string {
	switch d {
	case CPUKind:
		return "CPU"
	default:
		return "Unknown"
	}
}

// Device allocates zero-filled arrays of type A.
type Device[A any] interface {
	// Zeros returns a freshly allocated, zero-filled A.
	Zeros() *A
	Kind() DeviceKind
}

// HasDevice is an entity with a declared array type A and a device able to
// allocate one. The gradient store keys on this capability.
type HasDevice[A any] interface {
	HasUniqueID
	Device() Device[A]
}

// CPU allocates shaped float arrays in host memory.
type CPU[E Float] struct {
	Shape Shape
}

// Zeros allocates a zero-filled Array with the device's shape.
func (d CPU[E]) Zeros() *Array[E] {
	a, err := NewArray[E](d.Shape)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return a
}

// Kind returns CPUKind.
func (CPU[E]) Kind() DeviceKind {
	return CPUKind
}

// Static allocates value-typed arrays such as [5]float32 whose shape is
// part of the Go type. The zero value of A is already zero-filled.
type Static[A any] struct{}

// Zeros returns new(A).
func (Static[A]) Zeros() *A {
	return new(A)
}

// Kind returns CPUKind.
func (Static[A]) Kind() DeviceKind {
	return CPUKind
}
