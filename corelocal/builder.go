package corelocal

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/irq"
)

// Builder can build core-local controllers.
type Builder struct {
	index           int
	hart            int
	localInterrupts int
	logger          logr.Logger
}

// DefaultLocalInterrupts is the number of local interrupts a Builder starts
// with.
const DefaultLocalInterrupts = 16

// MakeBuilder returns a Builder with DefaultLocalInterrupts local interrupts.
func MakeBuilder() Builder {
	return Builder{
		localInterrupts: DefaultLocalInterrupts,
		logger:          logr.Discard(),
	}
}

// WithIndex sets the instance index of the controller.
func (b Builder) WithIndex(index int) Builder {
	b.index = index
	return b
}

// WithHart sets the hart that owns the controller.
func (b Builder) WithHart(hart int) Builder {
	b.hart = hart
	return b
}

// WithLocalInterrupts sets the number of local interrupts starting at id 16.
func (b Builder) WithLocalInterrupts(n int) Builder {
	b.localInterrupts = n
	return b
}

// WithLogger sets the logger of the controller.
func (b Builder) WithLogger(logger logr.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a core-local controller.
func (b Builder) Build(name string) *Comp {
	if b.localInterrupts < 0 {
		panic("number of local interrupts cannot be negative")
	}

	lastID := IDExternal
	if b.localInterrupts > 0 {
		lastID = FirstLocalID + irq.ID(b.localInterrupts) - 1
	}

	c := &Comp{
		ControllerBase: irq.MakeControllerBase(name, irq.KindCoreLocal, b.index),
		hart:           b.hart,
		ids:            IDs(b.localInterrupts),
		handlers:       irq.NewHandlerTable(),
		enabled:        make([]bool, lastID+1),
		pending:        make([]bool, lastID+1),
		mode:           irq.VectorDirect,
		log:            b.logger.WithValues("controller", name),
	}

	return c
}

// IDs returns the ids of a core-local controller with n local interrupts.
func IDs(n int) irq.IDSet {
	ranges := []irq.Range{
		irq.MakeRange(uint32(IDSoftware), uint32(IDSoftware)),
		irq.MakeRange(uint32(IDTimer), uint32(IDTimer)),
		irq.MakeRange(uint32(IDExternal), uint32(IDExternal)),
	}

	if n > 0 {
		last := FirstLocalID + irq.ID(n) - 1
		ranges = append(ranges,
			irq.MakeRange(uint32(FirstLocalID), uint32(last)))
	}

	return irq.MakeIDSet(ranges...)
}
