package plic

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/corelocal"
	"github.com/sarchlab/irqhal/irq"
)

// Builder can build platform prioritized controllers.
type Builder struct {
	index       int
	numSources  int
	maxPriority uint32
	parent      irq.Handle
	parentID    irq.ID
	logger      logr.Logger
}

// MakeBuilder returns a Builder for a controller with 52 sources and 7
// priority levels above zero.
func MakeBuilder() Builder {
	return Builder{
		numSources:  52,
		maxPriority: 7,
		parentID:    corelocal.IDExternal,
		logger:      logr.Discard(),
	}
}

// WithIndex sets the instance index of the controller.
func (b Builder) WithIndex(index int) Builder {
	b.index = index
	return b
}

// WithSources sets the number of interrupt sources. Source ids start at 1.
func (b Builder) WithSources(n int) Builder {
	b.numSources = n
	return b
}

// WithMaxPriority sets the highest priority. Priorities and the threshold
// range over [0, max].
func (b Builder) WithMaxPriority(p uint32) Builder {
	b.maxPriority = p
	return b
}

// WithParent sets the core-local controller that receives the external
// interrupt.
func (b Builder) WithParent(parent irq.Handle) Builder {
	b.parent = parent
	return b
}

// WithParentID sets the parent id the controller raises. It defaults to the
// machine external interrupt.
func (b Builder) WithParentID(id irq.ID) Builder {
	b.parentID = id
	return b
}

// WithLogger sets the logger of the controller.
func (b Builder) WithLogger(logger logr.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a platform prioritized controller.
func (b Builder) Build(name string) *Comp {
	if !b.parent.Valid() {
		panic("a platform prioritized controller needs a parent")
	}

	if b.numSources <= 0 {
		panic("a platform prioritized controller needs at least one source")
	}

	size := b.numSources + 1

	c := &Comp{
		ControllerBase: irq.MakeControllerBase(
			name, irq.KindPlatformPrioritized, b.index),
		ids:       irq.IDRange(1, irq.ID(b.numSources)),
		levels:    irq.MakeRange(0, b.maxPriority),
		parent:    b.parent,
		parentID:  b.parentID,
		handlers:  irq.NewHandlerTable(),
		enabled:   make([]bool, size),
		pending:   make([]bool, size),
		inService: make([]bool, size),
		priority:  make([]uint32, size),
		log:       b.logger.WithValues("controller", name),
	}
	c.reset()

	return c
}
