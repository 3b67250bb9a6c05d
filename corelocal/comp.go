// Package corelocal models the interrupt controller local to one hart. It
// owns the software, timer and external interrupt bits plus a bank of local
// interrupts, and other controllers chain onto its ids.
package corelocal

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/irq"
)

// The ids of the standard machine interrupts.
const (
	IDSoftware irq.ID = 3
	IDTimer    irq.ID = 7
	IDExternal irq.ID = 11

	// FirstLocalID is the id of the first local interrupt.
	FirstLocalID irq.ID = 16
)

// Comp is a core-local interrupt controller. It has no priority scheme. Its
// vector mode applies to every id at once, as the trap vector base does.
type Comp struct {
	irq.ControllerBase

	hart     int
	ids      irq.IDSet
	handlers *irq.HandlerTable
	enabled  []bool
	pending  []bool
	mode     irq.VectorMode
	log      logr.Logger
}

// Hart returns the hart that owns the controller.
func (c *Comp) Hart() int {
	return c.hart
}

// Capabilities implements irq.Controller.
func (c *Comp) Capabilities() irq.Capabilities {
	return irq.Capabilities{
		IDs:         c.ids,
		Handlers:    true,
		VectorModes: irq.VectorModes(irq.VectorDirect, irq.VectorFull),
	}
}

// Init clears every registration, enable bit and pending bit and selects
// direct mode.
func (c *Comp) Init() {
	c.handlers.Reset()
	clear(c.enabled)
	clear(c.pending)
	c.mode = irq.VectorDirect

	c.log.V(1).Info("initialized", "hart", c.hart, "ids", c.ids.String())
}

// RegisterHandler implements irq.Controller.
func (c *Comp) RegisterHandler(id irq.ID, h irq.Handler, data any) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpRegisterHandler, id, irq.ErrInvalidID)
	}

	c.handlers.Set(id, h, data)
	c.log.V(1).Info("handler registered", "id", id)

	return nil
}

// Enable implements irq.Controller. A pending interrupt is delivered as soon
// as its id is enabled.
func (c *Comp) Enable(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpEnable, id, irq.ErrInvalidID)
	}

	c.enabled[id] = true
	c.log.V(1).Info("enabled", "id", id)

	if c.pending[id] {
		c.deliver(id)
	}

	return nil
}

// Disable implements irq.Controller.
func (c *Comp) Disable(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpDisable, id, irq.ErrInvalidID)
	}

	c.enabled[id] = false
	c.log.V(1).Info("disabled", "id", id)

	return nil
}

// VectorEnable switches the controller between direct and vectored mode.
// The mode is shared by every id, so id is only validated.
func (c *Comp) VectorEnable(id irq.ID, mode irq.VectorMode) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpVectorEnable, id, irq.ErrInvalidID)
	}

	if !c.Capabilities().VectorModes.Has(mode) {
		return c.Fail(irq.OpVectorEnable, id, irq.ErrInvalidMode)
	}

	c.mode = mode
	c.log.V(1).Info("vector mode set", "mode", mode.String())

	return nil
}

// VectorDisable returns the controller to direct mode.
func (c *Comp) VectorDisable(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpVectorDisable, id, irq.ErrInvalidID)
	}

	c.mode = irq.VectorDirect

	return nil
}

// VectorMode returns the current vector mode.
func (c *Comp) VectorMode() irq.VectorMode {
	return c.mode
}

// Enabled tells if the id is enabled.
func (c *Comp) Enabled(id irq.ID) bool {
	return c.ids.Contains(id) && c.enabled[id]
}

// Pending tells if the id has been triggered but not delivered.
func (c *Comp) Pending(id irq.ID) bool {
	return c.ids.Contains(id) && c.pending[id]
}

// Trigger raises the id. The interrupt stays pending until it is enabled.
func (c *Comp) Trigger(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpTrigger, id, irq.ErrInvalidID)
	}

	c.pending[id] = true

	if c.enabled[id] {
		c.deliver(id)
	}

	return nil
}

func (c *Comp) deliver(id irq.ID) {
	c.pending[id] = false

	d := irq.Delivery{
		Controller: c.Name(),
		ID:         id,
		Mode:       c.mode,
		Vectored:   c.mode == irq.VectorFull,
	}

	reg, found := c.handlers.Get(id)
	if !found {
		c.log.V(2).Info("spurious interrupt", "id", id)
		c.NotifySpurious(d)

		return
	}

	c.log.V(2).Info("delivering", "id", id, "vectored", d.Vectored)
	c.NotifyDelivered(d)
	reg.Invoke()
}
