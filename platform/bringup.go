package platform

import (
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/clic"
	"github.com/sarchlab/irqhal/clint"
	"github.com/sarchlab/irqhal/corelocal"
	"github.com/sarchlab/irqhal/irq"
	"github.com/sarchlab/irqhal/plic"
)

// Option customizes BringUp.
type Option func(*options)

type options struct {
	logger logr.Logger
	hooks  []irq.Hook
	init   bool
}

// WithLogger sets the logger handed to every controller.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHook attaches a hook to the registry and every controller.
func WithHook(hook irq.Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hook)
	}
}

// WithoutInit leaves the controllers uninitialized, so that the caller can
// run Init through its own handles.
func WithoutInit() Option {
	return func(o *options) {
		o.init = false
	}
}

// BringUp builds the controllers of the description, publishes them in a
// registry and initializes them. Core-local controllers are built first so
// that the others can chain onto them.
func BringUp(cfg Config, opts ...Option) (*irq.Registry, error) {
	o := options{
		logger: logr.Discard(),
		init:   true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid platform: %w", err)
	}

	b := bringUp{
		opts:    o,
		cpus:    make(map[Ref]irq.Handle),
		perHart: make(map[int]irq.Handle),
		builder: irq.MakeRegistryBuilder(),
	}

	for _, c := range cfg.Controllers {
		if c.Kind == irq.KindCoreLocal {
			b.buildCoreLocal(c)
		}
	}

	for _, c := range cfg.Controllers {
		switch c.Kind {
		case irq.KindTimerComparator:
			b.buildTimerComparator(c)
		case irq.KindCompactVectored:
			b.buildCompactVectored(c)
		case irq.KindPlatformPrioritized:
			b.buildPlatformPrioritized(c)
		}
	}

	for _, hook := range o.hooks {
		b.builder = b.builder.WithHook(hook)
	}

	r, err := b.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	if o.init {
		r.InitAll()
	}

	o.logger.V(1).Info("platform up", "controllers", r.Len())

	return r, nil
}

type bringUp struct {
	opts    options
	cpus    map[Ref]irq.Handle
	perHart map[int]irq.Handle
	builder irq.RegistryBuilder
}

func (b *bringUp) add(c irq.Controller) {
	b.builder = b.builder.WithController(c)
}

func (b *bringUp) buildCoreLocal(c ControllerConfig) {
	builder := corelocal.MakeBuilder().
		WithIndex(c.Index).
		WithHart(c.Hart).
		WithLogger(b.opts.logger)
	if c.LocalInterrupts != nil {
		builder = builder.WithLocalInterrupts(*c.LocalInterrupts)
	}

	comp := builder.Build(c.DisplayName())
	h := irq.NewHandle(comp)

	b.cpus[c.Ref()] = h
	b.perHart[c.Hart] = h
	b.add(comp)
}

func (b *bringUp) buildTimerComparator(c ControllerConfig) {
	harts := c.Harts
	if len(harts) == 0 {
		for hart := range b.perHart {
			harts = append(harts, hart)
		}

		sort.Ints(harts)
	}

	parents := make([]irq.Handle, 0, len(harts))
	for _, hart := range harts {
		parents = append(parents, b.perHart[hart])
	}

	comp := clint.MakeBuilder().
		WithIndex(c.Index).
		WithParents(parents...).
		WithLogger(b.opts.logger).
		Build(c.DisplayName())
	b.add(comp)
}

func (b *bringUp) buildCompactVectored(c ControllerConfig) {
	builder := clic.MakeBuilder().
		WithIndex(c.Index).
		WithLogger(b.opts.logger)
	if c.Interrupts > 0 {
		builder = builder.WithInterrupts(c.Interrupts)
	}

	if c.IntctlBits > 0 {
		builder = builder.WithIntctlBits(c.IntctlBits)
	}

	b.add(builder.Build(c.DisplayName()))
}

func (b *bringUp) buildPlatformPrioritized(c ControllerConfig) {
	builder := plic.MakeBuilder().
		WithIndex(c.Index).
		WithParent(b.cpus[c.parentRef()]).
		WithLogger(b.opts.logger)
	if c.Sources > 0 {
		builder = builder.WithSources(c.Sources)
	}

	if c.MaxPriority != nil {
		builder = builder.WithMaxPriority(*c.MaxPriority)
	}

	if c.ParentID != nil {
		builder = builder.WithParentID(*c.ParentID)
	}

	b.add(builder.Build(c.DisplayName()))
}
