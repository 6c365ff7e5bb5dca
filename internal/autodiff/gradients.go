package autodiff

import (
	"maps"
	"slices"

	"github.com/born-ml/gradtape/internal/tensor"
)

// Gradients holds one gradient array per identity.
//
// Entries are stored type-erased as *A, where A is the array type the
// entity declares through tensor.HasDevice[A]. The first access for an
// identity fixes its type; a later access with a different A panics with
// ErrTypeMismatch.
//
// Access goes through the package-level generic functions MutGradient,
// RefGradient, LookupGradient, Remove, Insert and MutAndRef, since Go
// methods cannot take type parameters.
//
// The zero value is an empty store ready to use.
type Gradients struct {
	gradientByID map[tensor.UniqueID]any
}

// NewGradients creates an empty store.
func NewGradients() *Gradients {
	return &Gradients{gradientByID: make(map[tensor.UniqueID]any)}
}

// Len returns the number of stored gradients.
func (g *Gradients) Len() int {
	return len(g.gradientByID)
}

// Has reports whether a gradient is stored for t.
func (g *Gradients) Has(t tensor.HasUniqueID) bool {
	_, ok := g.gradientByID[t.ID()]
	return ok
}

// IDs returns the stored identities in ascending order.
func (g *Gradients) IDs() []tensor.UniqueID {
	return slices.Sorted(maps.Keys(g.gradientByID))
}

func (g *Gradients) entries() map[tensor.UniqueID]any {
	if g.gradientByID == nil {
		g.gradientByID = make(map[tensor.UniqueID]any)
	}
	return g.gradientByID
}

// MutGradient returns t's gradient for writing.
//
// If nothing is stored for t yet, t's device allocates a zero-filled array
// which is stored and returned.
func MutGradient[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	entries := g.entries()
	id := t.ID()
	if box, ok := entries[id]; ok {
		return downcast[A](id, box)
	}
	grad := t.Device().Zeros()
	entries[id] = grad
	return grad
}

// RefGradient returns t's gradient for reading.
// Panics with ErrNoGradient if nothing was written for t.
func RefGradient[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	grad, ok := LookupGradient(g, t)
	if !ok {
		fail(ErrNoGradient, "id %v", t.ID())
	}
	return grad
}

// LookupGradient returns t's gradient and whether one is stored.
// Callers for which a missing gradient is legitimate use this instead of
// RefGradient.
func LookupGradient[A any](g *Gradients, t tensor.HasDevice[A]) (*A, bool) {
	id := t.ID()
	box, ok := g.gradientByID[id]
	if !ok {
		return nil, false
	}
	return downcast[A](id, box), true
}

// Remove deletes t's gradient from the store and returns it.
// Panics with ErrNoGradient if nothing is stored for t.
func Remove[A any](g *Gradients, t tensor.HasDevice[A]) *A {
	id := t.ID()
	box, ok := g.gradientByID[id]
	if !ok {
		fail(ErrNoGradient, "remove id %v", id)
	}
	grad := downcast[A](id, box)
	delete(g.gradientByID, id)
	return grad
}

// Insert stores grad as t's gradient, replacing any existing entry of the
// same type.
func Insert[A any](g *Gradients, t tensor.HasDevice[A], grad *A) {
	entries := g.entries()
	id := t.ID()
	if box, ok := entries[id]; ok {
		downcast[A](id, box)
	}
	entries[id] = grad
}

// MutAndRef returns l's gradient for writing and r's gradient for reading.
// l is the gradient being accumulated into, r the gradient being propagated.
//
// Panics with ErrIDCollision if l and r share an identity, and with
// ErrNoGradient if nothing was written for r. l's entry is created lazily as
// in MutGradient.
//
// Entries are boxed, so the two pointers address distinct arrays whenever
// the identities differ.
func MutAndRef[L, R any](g *Gradients, l tensor.HasDevice[L], r tensor.HasDevice[R]) (*L, *R) {
	if l.ID() == r.ID() {
		fail(ErrIDCollision, "mut and ref of the same id %v", l.ID())
	}
	lGrad := MutGradient(g, l)
	rGrad := RefGradient(g, r)
	return lGrad, rGrad
}

func downcast[A any](id tensor.UniqueID, box any) *A {
	grad, ok := box.(*A)
	if !ok {
		fail(ErrTypeMismatch, "id %v holds %T, requested %T", id, box, (*A)(nil))
	}
	return grad
}
