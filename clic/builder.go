package clic

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/internal/mtimer"
	"github.com/sarchlab/irqhal/irq"
)

// Builder can build compact vectored controllers.
type Builder struct {
	index         int
	numInterrupts int
	intctlBits    int
	logger        logr.Logger
}

// MakeBuilder returns a Builder for a controller with 64 interrupts and 4
// priority bits.
func MakeBuilder() Builder {
	return Builder{
		numInterrupts: 64,
		intctlBits:    4,
		logger:        logr.Discard(),
	}
}

// WithIndex sets the instance index of the controller.
func (b Builder) WithIndex(index int) Builder {
	b.index = index
	return b
}

// WithInterrupts sets the number of interrupt ids.
func (b Builder) WithInterrupts(n int) Builder {
	b.numInterrupts = n
	return b
}

// WithIntctlBits sets the number of implemented priority bits. The priority
// range becomes [0, 2^bits-1].
func (b Builder) WithIntctlBits(bits int) Builder {
	b.intctlBits = bits
	return b
}

// WithLogger sets the logger of the controller.
func (b Builder) WithLogger(logger logr.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a compact vectored controller.
func (b Builder) Build(name string) *Comp {
	if b.numInterrupts <= 0 {
		panic("a compact vectored controller needs at least one interrupt")
	}

	if b.intctlBits < 1 || b.intctlBits > 8 {
		panic("intctl bits must be between 1 and 8")
	}

	maxLevel := uint32(1)<<uint(b.intctlBits) - 1

	c := &Comp{
		ControllerBase: irq.MakeControllerBase(
			name, irq.KindCompactVectored, b.index),
		ids:      irq.IDRange(0, irq.ID(b.numInterrupts-1)),
		levels:   irq.MakeRange(0, maxLevel),
		handlers: irq.NewHandlerTable(),
		enabled:  make([]bool, b.numInterrupts),
		pending:  make([]bool, b.numInterrupts),
		modes:    make([]irq.VectorMode, b.numInterrupts),
		priority: make([]uint32, b.numInterrupts),
		log:      b.logger.WithValues("controller", name),
	}
	c.timer = mtimer.New(1, c.raiseLocal)
	c.reset()

	return c
}
