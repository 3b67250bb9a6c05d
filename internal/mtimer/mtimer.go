// Package mtimer models the machine timer and software interrupt bits shared
// by the timer-comparator and compact vectored controllers.
package mtimer

import (
	"math"

	"github.com/sarchlab/irqhal/irq"
)

// The core-local interrupt ids raised by the timer block.
const (
	IDSoftware irq.ID = 3
	IDTimer    irq.ID = 7
)

// RaiseFunc asserts the interrupt id on a hart.
type RaiseFunc func(hart int, id irq.ID) error

// Timer holds mtime, one mtimecmp per hart and one msip bit per hart.
type Timer struct {
	mtime    uint64
	mtimecmp []uint64
	msip     []bool
	raise    RaiseFunc
}

// New creates a Timer serving numHarts harts.
func New(numHarts int, raise RaiseFunc) *Timer {
	t := &Timer{
		mtimecmp: make([]uint64, numHarts),
		msip:     make([]bool, numHarts),
		raise:    raise,
	}
	t.Reset()

	return t
}

// Reset parks every compare register at the maximum value and clears the
// software bits. mtime keeps running.
func (t *Timer) Reset() {
	for i := range t.mtimecmp {
		t.mtimecmp[i] = math.MaxUint64
		t.msip[i] = false
	}
}

// Harts returns the number of harts served.
func (t *Timer) Harts() int {
	return len(t.mtimecmp)
}

// Now returns mtime.
func (t *Timer) Now() uint64 {
	return t.mtime
}

// Compare returns the mtimecmp of the hart.
func (t *Timer) Compare(hart int) uint64 {
	return t.mtimecmp[hart]
}

// Software returns the msip bit of the hart.
func (t *Timer) Software(hart int) bool {
	return t.msip[hart]
}

// ValidHart tells if the hart is served by the timer.
func (t *Timer) ValidHart(hart int) bool {
	return hart >= 0 && hart < len(t.mtimecmp)
}

// Advance moves mtime forward and raises the timer interrupt of every hart
// whose compare value has been reached.
func (t *Timer) Advance(delta uint64) error {
	if t.mtime > math.MaxUint64-delta {
		t.mtime = math.MaxUint64
	} else {
		t.mtime += delta
	}

	for hart := range t.mtimecmp {
		if err := t.checkTimer(hart); err != nil {
			return err
		}
	}

	return nil
}

func (t *Timer) checkTimer(hart int) error {
	if t.mtime < t.mtimecmp[hart] {
		return nil
	}

	return t.raise(hart, IDTimer)
}

// HandleCommand executes the timer and software interrupt commands. The
// handled result is false for commands that belong to someone else.
func (t *Timer) HandleCommand(
	c irq.Named,
	cmd irq.Command,
) (result int32, handled bool, err error) {
	switch cmd := cmd.(type) {
	case *irq.TimeGet:
		cmd.Time = t.mtime
		return 0, true, nil
	case *irq.TimeCompareSet:
		if !t.ValidHart(cmd.Hart) {
			return 0, true, t.badHart(c, cmd.Hart)
		}

		t.mtimecmp[cmd.Hart] = cmd.Time

		return 0, true, t.checkTimer(cmd.Hart)
	case *irq.TimeCompareGet:
		if !t.ValidHart(cmd.Hart) {
			return 0, true, t.badHart(c, cmd.Hart)
		}

		cmd.Time = t.mtimecmp[cmd.Hart]

		return 0, true, nil
	case *irq.SoftwareIPISet:
		if !t.ValidHart(cmd.Hart) {
			return 0, true, t.badHart(c, cmd.Hart)
		}

		t.msip[cmd.Hart] = true

		return 0, true, t.raise(cmd.Hart, IDSoftware)
	case *irq.SoftwareIPIClear:
		if !t.ValidHart(cmd.Hart) {
			return 0, true, t.badHart(c, cmd.Hart)
		}

		t.msip[cmd.Hart] = false

		return 0, true, nil
	case *irq.SoftwareIPIGet:
		if !t.ValidHart(cmd.Hart) {
			return 0, true, t.badHart(c, cmd.Hart)
		}

		if t.msip[cmd.Hart] {
			return 1, true, nil
		}

		return 0, true, nil
	}

	return 0, false, nil
}

func (t *Timer) badHart(c irq.Named, hart int) error {
	return irq.NewError(irq.OpCommandRequest, c, irq.ID(hart), irq.ErrInvalidID)
}

// Commands lists the command codes HandleCommand accepts.
func Commands() []irq.CommandCode {
	return []irq.CommandCode{
		irq.CmdTimeGet,
		irq.CmdTimeCompareSet,
		irq.CmdTimeCompareGet,
		irq.CmdSoftwareIPISet,
		irq.CmdSoftwareIPIClear,
		irq.CmdSoftwareIPIGet,
	}
}
