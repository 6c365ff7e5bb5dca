package tensor

// Phantom is a non-owning handle to an entity: it carries the entity's
// identity and device but none of its data. Backward closures capture
// phantoms to address gradient slots without keeping tensor data alive.
//
// A phantom shares its identity with the entity it was made from, so both
// address the same gradient slot.
type Phantom[A any] struct {
	id     UniqueID
	device Device[A]
}

// PhantomOf returns a phantom for e.
func PhantomOf[A any](e HasDevice[A]) Phantom[A] {
	return Phantom[A]{id: e.ID(), device: e.Device()}
}

// ID returns the identity of the entity the phantom was made from.
func (p Phantom[A]) ID() UniqueID {
	return p.id
}

// Device returns the device of the entity the phantom was made from.
func (p Phantom[A]) Device() Device[A] {
	return p.device
}
