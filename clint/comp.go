// Package clint models the timer-comparator controller. It holds the machine
// timer, one compare register and one software interrupt bit per hart, and
// raises the timer and software ids on the core-local controllers.
package clint

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/internal/mtimer"
	"github.com/sarchlab/irqhal/irq"
)

// The ids the controller serves. They are the core-local ids it raises.
const (
	IDSoftware = mtimer.IDSoftware
	IDTimer    = mtimer.IDTimer
)

var ids = irq.MakeIDSet(
	irq.MakeRange(uint32(IDSoftware), uint32(IDSoftware)),
	irq.MakeRange(uint32(IDTimer), uint32(IDTimer)),
)

// Comp is a timer-comparator controller. Handlers and enable bits live in the
// core-local parents; this controller forwards to every hart it serves.
type Comp struct {
	irq.ControllerBase

	parents []irq.Handle
	timer   *mtimer.Timer
	log     logr.Logger
}

// Capabilities implements irq.Controller.
func (c *Comp) Capabilities() irq.Capabilities {
	return irq.Capabilities{
		IDs:      ids,
		Handlers: true,
		Commands: mtimer.Commands(),
	}
}

// Harts returns the number of harts served.
func (c *Comp) Harts() int {
	return len(c.parents)
}

// Init parks every compare register and clears the software bits.
func (c *Comp) Init() {
	c.timer.Reset()
	c.log.V(1).Info("initialized", "harts", len(c.parents))
}

// RegisterHandler installs the handler on every served hart.
func (c *Comp) RegisterHandler(id irq.ID, h irq.Handler, data any) error {
	if !ids.Contains(id) {
		return c.Fail(irq.OpRegisterHandler, id, irq.ErrInvalidID)
	}

	for _, p := range c.parents {
		if err := p.RegisterHandler(id, h, data); err != nil {
			return err
		}
	}

	c.log.V(1).Info("handler registered", "id", id)

	return nil
}

// Enable enables the id on every served hart.
func (c *Comp) Enable(id irq.ID) error {
	if !ids.Contains(id) {
		return c.Fail(irq.OpEnable, id, irq.ErrInvalidID)
	}

	for _, p := range c.parents {
		if err := p.Enable(id); err != nil {
			return err
		}
	}

	return nil
}

// Disable disables the id on every served hart.
func (c *Comp) Disable(id irq.ID) error {
	if !ids.Contains(id) {
		return c.Fail(irq.OpDisable, id, irq.ErrInvalidID)
	}

	for _, p := range c.parents {
		if err := p.Disable(id); err != nil {
			return err
		}
	}

	return nil
}

// CommandRequest runs the timer and software interrupt commands.
func (c *Comp) CommandRequest(cmd irq.Command) (int32, error) {
	result, handled, err := c.timer.HandleCommand(c, cmd)
	if !handled {
		return 0, c.Unsupported(irq.OpCommandRequest, irq.NoID)
	}

	return result, err
}

// Now returns the machine timer.
func (c *Comp) Now() uint64 {
	return c.timer.Now()
}

// AdvanceTime moves the machine timer forward, raising the timer interrupt of
// every hart whose compare value is reached.
func (c *Comp) AdvanceTime(delta uint64) error {
	return c.timer.Advance(delta)
}

// Trigger raises the id on every served hart.
func (c *Comp) Trigger(id irq.ID) error {
	if !ids.Contains(id) {
		return c.Fail(irq.OpTrigger, id, irq.ErrInvalidID)
	}

	for hart := range c.parents {
		if err := c.raise(hart, id); err != nil {
			return err
		}
	}

	return nil
}

func (c *Comp) raise(hart int, id irq.ID) error {
	c.log.V(2).Info("raising", "hart", hart, "id", id)
	return c.parents[hart].Trigger(id)
}
