// Package plic models the platform-level prioritized interrupt controller.
// Sources carry a priority and are gated by a threshold. The controller
// signals one core-local parent id and its handlers run from the claim and
// complete loop behind that id.
package plic

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/irq"
)

var commands = []irq.CommandCode{irq.CmdClaim, irq.CmdComplete}

// Comp is a platform prioritized interrupt controller.
type Comp struct {
	irq.ControllerBase

	ids       irq.IDSet
	levels    irq.Range
	parent    irq.Handle
	parentID  irq.ID
	handlers  *irq.HandlerTable
	enabled   []bool
	pending   []bool
	inService []bool
	priority  []uint32
	threshold uint32
	log       logr.Logger
}

// Capabilities implements irq.Controller.
func (c *Comp) Capabilities() irq.Capabilities {
	return irq.Capabilities{
		IDs:       c.ids,
		Handlers:  true,
		Priority:  c.levels,
		Threshold: c.levels,
		Commands:  commands,
	}
}

// Parent returns the core-local controller the controller signals.
func (c *Comp) Parent() irq.Handle {
	return c.parent
}

// Init clears all sources and hooks the claim loop on the parent id. Every
// source starts at priority 1 and the threshold at 0.
func (c *Comp) Init() {
	c.reset()

	err := c.parent.RegisterHandler(c.parentID, c.externalISR, nil)
	if err == nil {
		err = c.parent.Enable(c.parentID)
	}

	if err != nil {
		c.log.Error(err, "cannot attach to parent",
			"parent", c.parent.Name(), "id", c.parentID)
	}

	c.log.V(1).Info("initialized", "ids", c.ids.String(),
		"priorities", c.levels.String())
}

func (c *Comp) reset() {
	c.handlers.Reset()
	clear(c.enabled)
	clear(c.pending)
	clear(c.inService)

	for i := range c.priority {
		c.priority[i] = min(1, c.levels.Max)
	}

	c.threshold = 0
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

// Enable implements irq.Controller.
func (c *Comp) Enable(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpEnable, id, irq.ErrInvalidID)
	}

	c.enabled[id] = true
	c.log.V(1).Info("enabled", "id", id)

	return c.signal()
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

// Threshold implements irq.Controller.
func (c *Comp) Threshold() (uint32, error) {
	return c.threshold, nil
}

// SetThreshold implements irq.Controller.
func (c *Comp) SetThreshold(level uint32) error {
	if !c.levels.Contains(level) {
		return c.Fail(irq.OpSetThreshold, irq.NoID, irq.ErrOutOfRange)
	}

	c.threshold = level
	c.log.V(1).Info("threshold set", "level", level)

	return c.signal()
}

// Priority implements irq.Controller.
func (c *Comp) Priority(id irq.ID) (uint32, error) {
	if !c.ids.Contains(id) {
		return 0, c.Fail(irq.OpGetPriority, id, irq.ErrInvalidID)
	}

	return c.priority[id], nil
}

// SetPriority implements irq.Controller.
func (c *Comp) SetPriority(id irq.ID, priority uint32) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpSetPriority, id, irq.ErrInvalidID)
	}

	if !c.levels.Contains(priority) {
		return c.Fail(irq.OpSetPriority, id, irq.ErrOutOfRange)
	}

	c.priority[id] = priority
	c.log.V(1).Info("priority set", "id", id, "priority", priority)

	return c.signal()
}

// CommandRequest runs the claim and complete commands. A claim returns 0
// when nothing is claimable.
func (c *Comp) CommandRequest(cmd irq.Command) (int32, error) {
	switch cmd := cmd.(type) {
	case *irq.Claim:
		cmd.ID = c.claim()
		return int32(cmd.ID), nil
	case *irq.Complete:
		if !c.ids.Contains(cmd.ID) {
			return 0, c.Fail(irq.OpCommandRequest, cmd.ID, irq.ErrInvalidID)
		}

		c.complete(cmd.ID)

		return 0, c.signal()
	default:
		return 0, c.Unsupported(irq.OpCommandRequest, irq.NoID)
	}
}

// Pending tells if the source waits to be claimed.
func (c *Comp) Pending(id irq.ID) bool {
	return c.ids.Contains(id) && c.pending[id]
}

// InService tells if the source has been claimed but not completed.
func (c *Comp) InService(id irq.ID) bool {
	return c.ids.Contains(id) && c.inService[id]
}

// Trigger raises the source and signals the parent if any source can be
// claimed.
func (c *Comp) Trigger(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpTrigger, id, irq.ErrInvalidID)
	}

	c.pending[id] = true

	return c.signal()
}

func (c *Comp) signal() error {
	if c.best() == 0 {
		return nil
	}

	c.log.V(2).Info("signaling parent", "parent", c.parent.Name(),
		"id", c.parentID)

	return c.parent.Trigger(c.parentID)
}

// best returns the claimable source with the highest priority. Ties go to
// the lowest id. 0 means none.
func (c *Comp) best() irq.ID {
	best := irq.ID(0)

	for i := 1; i < len(c.pending); i++ {
		if !c.claimable(irq.ID(i)) {
			continue
		}

		if best == 0 || c.priority[i] > c.priority[best] {
			best = irq.ID(i)
		}
	}

	return best
}

func (c *Comp) claimable(id irq.ID) bool {
	return c.pending[id] &&
		c.enabled[id] &&
		!c.inService[id] &&
		c.priority[id] > c.threshold
}

func (c *Comp) claim() irq.ID {
	id := c.best()
	if id == 0 {
		return 0
	}

	c.pending[id] = false
	c.inService[id] = true

	return id
}

func (c *Comp) complete(id irq.ID) {
	c.inService[id] = false
}

// externalISR runs on the parent. It drains every claimable source.
func (c *Comp) externalISR(irq.ID, any) {
	for {
		id := c.claim()
		if id == 0 {
			return
		}

		c.dispatch(id)
		c.complete(id)
	}
}

func (c *Comp) dispatch(id irq.ID) {
	d := irq.Delivery{
		Controller: c.Name(),
		ID:         id,
		Mode:       irq.VectorDirect,
	}

	reg, found := c.handlers.Get(id)
	if !found {
		c.log.V(2).Info("spurious interrupt", "id", id)
		c.NotifySpurious(d)

		return
	}

	c.log.V(2).Info("delivering", "id", id)
	c.NotifyDelivered(d)
	reg.Invoke()
}
