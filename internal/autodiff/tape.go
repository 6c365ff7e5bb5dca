package autodiff

import (
	"github.com/born-ml/gradtape/internal/tensor"
	"k8s.io/klog/v2"
)

// BackwardOp is one deferred backward step. It reads the gradient of an
// op's output from the store and accumulates into the gradients of the op's
// inputs. It runs exactly once.
type BackwardOp func(g *Gradients)

// GradientTape records backward ops during the forward pass and runs them
// newest first on Execute.
//
// Each forward op records its backward step right after computing its
// output, so an op's step runs only after every later op that consumed its
// output has already propagated gradient into it.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.Record(func(g *Gradients) { ... })
//	grads := tape.Execute()
type GradientTape struct {
	operations []BackwardOp    // Recorded ops, oldest first
	holder     tensor.UniqueID // Tensor currently carrying the tape, 0 if none
	executed   bool
}

// NewGradientTape creates an empty tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]BackwardOp, 0, 64),
	}
}

// Record adds op to the tape. It will run before every op recorded earlier
// and after every op recorded later.
//
// Ops are appended and the slice is walked backwards on Execute, which keeps
// Record amortized O(1).
func (t *GradientTape) Record(op BackwardOp) {
	if t.executed {
		fail(ErrTapeConsumed, "record after execute")
	}
	t.operations = append(t.operations, op)
}

// NumOps returns the number of recorded ops.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Execute runs every recorded op against a new store, newest first, and
// returns the store. The tape is consumed: a second Execute, or a Record
// after Execute, panics with ErrTapeConsumed.
func (t *GradientTape) Execute() *Gradients {
	if t.executed {
		fail(ErrTapeConsumed, "execute called twice")
	}
	t.executed = true

	ops := t.operations
	t.operations = nil

	klog.V(4).InfoS("executing gradient tape", "ops", len(ops))

	grads := NewGradients()
	for i := len(ops) - 1; i >= 0; i-- {
		ops[i](grads)
		ops[i] = nil
	}

	klog.V(4).InfoS("gradient tape executed", "gradients", grads.Len())
	return grads
}

// Tape is the capability every differentiable op is written against.
//
// It has exactly two implementations, picked by the tensor's static type:
// OwnedTape records, NoneTape does nothing. Ops are generic over T Tape, so
// one implementation serves both training and inference.
//
// Ops guard closure construction with OwnsTape, which is constant for each
// implementation:
//
//	if tape.OwnsTape() {
//	    tape.AddBackwardOp(func(g *Gradients) { ... })
//	}
type Tape interface {
	AddBackwardOp(op BackwardOp)
	OwnsTape() bool

	// checkHolder panics with ErrTapeMoved if the tensor id no longer
	// carries the tape.
	checkHolder(id tensor.UniqueID)
	// setHolder records id as the tensor carrying the tape.
	setHolder(id tensor.UniqueID)
}

// OwnedTape owns a GradientTape and forwards AddBackwardOp to it.
//
// It is passed by value from op to op along with the tensor carrying it.
// The underlying tape remembers which tensor holds it: once an op moves the
// tape to its output, the input tensor can no longer hand it to another op.
type OwnedTape struct {
	tape *GradientTape
}

// NewOwnedTape returns an OwnedTape wrapping a new GradientTape.
func NewOwnedTape() OwnedTape {
	return OwnedTape{tape: NewGradientTape()}
}

// AddBackwardOp records op on the owned tape.
func (t OwnedTape) AddBackwardOp(op BackwardOp) {
	if t.tape == nil {
		panic("autodiff: OwnedTape not created with NewOwnedTape")
	}
	t.tape.Record(op)
}

// OwnsTape returns true.
func (OwnedTape) OwnsTape() bool {
	return true
}

// NumOps returns the number of recorded ops.
func (t OwnedTape) NumOps() int {
	if t.tape == nil {
		return 0
	}
	return t.tape.NumOps()
}

// Execute executes the owned tape. See GradientTape.Execute.
func (t OwnedTape) Execute() *Gradients {
	if t.tape == nil {
		panic("autodiff: OwnedTape not created with NewOwnedTape")
	}
	return t.tape.Execute()
}

func (t OwnedTape) checkHolder(id tensor.UniqueID) {
	if t.tape == nil || t.tape.holder == 0 {
		return
	}
	if t.tape.holder != id {
		fail(ErrTapeMoved, "tensor %v used after its tape moved to %v", id, t.tape.holder)
	}
}

func (t OwnedTape) setHolder(id tensor.UniqueID) {
	if t.tape != nil {
		t.tape.holder = id
	}
}

// NoneTape records nothing. Tensors carrying it pay nothing for
// differentiability.
type NoneTape struct{}

// AddBackwardOp does nothing.
func (NoneTape) AddBackwardOp(BackwardOp) {}

// OwnsTape returns false.
func (NoneTape) OwnsTape() bool {
	return false
}

func (NoneTape) checkHolder(tensor.UniqueID) {}

func (NoneTape) setHolder(tensor.UniqueID) {}
