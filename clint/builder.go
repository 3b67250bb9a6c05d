package clint

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/internal/mtimer"
	"github.com/sarchlab/irqhal/irq"
)

// Builder can build timer-comparator controllers.
type Builder struct {
	index   int
	parents []irq.Handle
	logger  logr.Logger
}

// MakeBuilder returns a new Builder.
func MakeBuilder() Builder {
	return Builder{
		logger: logr.Discard(),
	}
}

// WithIndex sets the instance index of the controller.
func (b Builder) WithIndex(index int) Builder {
	b.index = index
	return b
}

// WithParents sets the core-local controllers of the served harts. The n-th
// parent belongs to hart n.
func (b Builder) WithParents(parents ...irq.Handle) Builder {
	b.parents = append([]irq.Handle(nil), parents...)
	return b
}

// WithLogger sets the logger of the controller.
func (b Builder) WithLogger(logger logr.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a timer-comparator controller.
func (b Builder) Build(name string) *Comp {
	if len(b.parents) == 0 {
		panic("a timer-comparator controller needs at least one parent")
	}

	for _, p := range b.parents {
		if !p.Valid() {
			panic("invalid parent handle")
		}
	}

	c := &Comp{
		ControllerBase: irq.MakeControllerBase(
			name, irq.KindTimerComparator, b.index),
		parents: b.parents,
		log:     b.logger.WithValues("controller", name),
	}
	c.timer = mtimer.New(len(b.parents), c.raise)

	return c
}
