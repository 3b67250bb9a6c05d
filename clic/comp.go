// Package clic models the compact vectored interrupt controller. Each id has
// a priority level and its own vector mode; a global threshold
// masks the levels at or below it. The controller also carries the machine
// timer of its hart.
package clic

import (
	"github.com/go-logr/logr"
	"github.com/sarchlab/irqhal/internal/mtimer"
	"github.com/sarchlab/irqhal/irq"
)

// The local ids raised by the built-in timer block.
const (
	IDSoftware = mtimer.IDSoftware
	IDTimer    = mtimer.IDTimer
)

var vectorModes = irq.VectorModes(
	irq.VectorDirect,
	irq.VectorSelective,
	irq.VectorHardware,
)

// Comp is a compact vectored interrupt controller.
type Comp struct {
	irq.ControllerBase

	ids       irq.IDSet
	levels    irq.Range
	handlers  *irq.HandlerTable
	enabled   []bool
	pending   []bool
	modes     []irq.VectorMode
	priority  []uint32
	threshold uint32
	timer     *mtimer.Timer
	log       logr.Logger
}

// Capabilities implements irq.Controller.
func (c *Comp) Capabilities() irq.Capabilities {
	return irq.Capabilities{
		IDs:         c.ids,
		Handlers:    true,
		Priority:    c.levels,
		Threshold:   c.levels,
		VectorModes: vectorModes,
		Commands:    mtimer.Commands(),
	}
}

// Init clears all registrations and state. Every id starts at the highest
// level and the threshold at zero, so that an enabled id fires.
func (c *Comp) Init() {
	c.reset()
	c.timer.Reset()
	c.log.V(1).Info("initialized", "ids", c.ids.String(),
		"levels", c.levels.String())
}

func (c *Comp) reset() {
	c.handlers.Reset()
	clear(c.enabled)
	clear(c.pending)
	clear(c.modes)

	for i := range c.priority {
		c.priority[i] = c.levels.Max
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
	c.evaluate()

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

// VectorEnable selects the vector mode of id alone. Selective and hardware
// set its vectoring bit; direct clears it. Full vectoring is not available.
func (c *Comp) VectorEnable(id irq.ID, mode irq.VectorMode) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpVectorEnable, id, irq.ErrInvalidID)
	}

	if !vectorModes.Has(mode) {
		return c.Fail(irq.OpVectorEnable, id, irq.ErrInvalidMode)
	}

	c.modes[id] = mode
	c.log.V(1).Info("vector mode set", "id", id, "mode", mode.String())

	return nil
}

// VectorDisable clears the vectoring bit of id.
func (c *Comp) VectorDisable(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpVectorDisable, id, irq.ErrInvalidID)
	}

	c.modes[id] = irq.VectorDirect

	return nil
}

// Vectored tells if deliveries of the id go through the vector table.
func (c *Comp) Vectored(id irq.ID) bool {
	return c.VectorMode(id) != irq.VectorDirect
}

// VectorMode returns the vector mode selected for the id, direct when the id
// is not vectored.
func (c *Comp) VectorMode(id irq.ID) irq.VectorMode {
	if !c.ids.Contains(id) {
		return irq.VectorDirect
	}

	return c.modes[id]
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
	c.evaluate()

	return nil
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
	c.evaluate()

	return nil
}

// CommandRequest runs the timer and software interrupt commands of hart 0.
func (c *Comp) CommandRequest(cmd irq.Command) (int32, error) {
	result, handled, err := c.timer.HandleCommand(c, cmd)
	if !handled {
		return 0, c.Unsupported(irq.OpCommandRequest, irq.NoID)
	}

	return result, err
}

// AdvanceTime moves the machine timer forward.
func (c *Comp) AdvanceTime(delta uint64) error {
	return c.timer.Advance(delta)
}

// Now returns the machine timer.
func (c *Comp) Now() uint64 {
	return c.timer.Now()
}

// Pending tells if the id waits for delivery.
func (c *Comp) Pending(id irq.ID) bool {
	return c.ids.Contains(id) && c.pending[id]
}

// Trigger raises the id. It is delivered once it is enabled and its level is
// above the threshold.
func (c *Comp) Trigger(id irq.ID) error {
	if !c.ids.Contains(id) {
		return c.Fail(irq.OpTrigger, id, irq.ErrInvalidID)
	}

	c.pending[id] = true
	c.evaluate()

	return nil
}

func (c *Comp) raiseLocal(_ int, id irq.ID) error {
	if !c.ids.Contains(id) {
		return nil
	}

	return c.Trigger(id)
}

// evaluate delivers pending ids from the highest level down. Ties go to the
// larger id, as in the hardware arbitration.
func (c *Comp) evaluate() {
	for {
		id, found := c.next()
		if !found {
			return
		}

		c.deliver(id)
	}
}

func (c *Comp) next() (irq.ID, bool) {
	best := irq.ID(-1)

	for i := range c.pending {
		if !c.pending[i] || !c.enabled[i] || c.priority[i] <= c.threshold {
			continue
		}

		if best < 0 || c.priority[i] >= c.priority[best] {
			best = irq.ID(i)
		}
	}

	return best, best >= 0
}

func (c *Comp) deliver(id irq.ID) {
	c.pending[id] = false

	d := irq.Delivery{
		Controller: c.Name(),
		ID:         id,
		Mode:       c.VectorMode(id),
		Vectored:   c.Vectored(id),
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
