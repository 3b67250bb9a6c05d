package irq

import "fmt"

// CommandCode is the tag of a controller-specific command.
type CommandCode int

// The command codes known to the controllers in this module.
const (
	CmdRaw CommandCode = iota
	CmdTimeGet
	CmdTimeCompareSet
	CmdTimeCompareGet
	CmdSoftwareIPISet
	CmdSoftwareIPIClear
	CmdSoftwareIPIGet
	CmdClaim
	CmdComplete
)

var commandNames = map[CommandCode]string{
	CmdRaw:              "raw",
	CmdTimeGet:          "time_get",
	CmdTimeCompareSet:   "time_compare_set",
	CmdTimeCompareGet:   "time_compare_get",
	CmdSoftwareIPISet:   "software_ipi_set",
	CmdSoftwareIPIClear: "software_ipi_clear",
	CmdSoftwareIPIGet:   "software_ipi_get",
	CmdClaim:            "claim",
	CmdComplete:         "complete",
}

func (c CommandCode) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}

	return "unknown"
}

// ParseCommandCode converts a command name such as "time_get" into a
// CommandCode.
func ParseCommandCode(s string) (CommandCode, error) {
	for c, n := range commandNames {
		if n == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown command %q", s)
}

// A Command is a request for an operation outside the common contract.
// Commands that return data carry output fields that the controller fills
// in, so they are passed by pointer.
type Command interface {
	Code() CommandCode
}

// TimeGet reads the machine timer.
type TimeGet struct {
	Time uint64
}

// Code implements Command.
func (*TimeGet) Code() CommandCode { return CmdTimeGet }

// TimeCompareSet programs the timer compare value of a hart.
type TimeCompareSet struct {
	Hart int
	Time uint64
}

// Code implements Command.
func (*TimeCompareSet) Code() CommandCode { return CmdTimeCompareSet }

// TimeCompareGet reads the timer compare value of a hart.
type TimeCompareGet struct {
	Hart int
	Time uint64
}

// Code implements Command.
func (*TimeCompareGet) Code() CommandCode { return CmdTimeCompareGet }

// SoftwareIPISet raises the software interrupt of a hart.
type SoftwareIPISet struct {
	Hart int
}

// Code implements Command.
func (*SoftwareIPISet) Code() CommandCode { return CmdSoftwareIPISet }

// SoftwareIPIClear clears the software interrupt of a hart.
type SoftwareIPIClear struct {
	Hart int
}

// Code implements Command.
func (*SoftwareIPIClear) Code() CommandCode { return CmdSoftwareIPIClear }

// SoftwareIPIGet reads the software interrupt bit of a hart. The bit is the
// command result.
type SoftwareIPIGet struct {
	Hart int
}

// Code implements Command.
func (*SoftwareIPIGet) Code() CommandCode { return CmdSoftwareIPIGet }

// Claim takes the highest priority pending interrupt. ID is 0 when nothing
// can be claimed.
type Claim struct {
	ID ID
}

// Code implements Command.
func (*Claim) Code() CommandCode { return CmdClaim }

// Complete signals that the claimed interrupt has been serviced.
type Complete struct {
	ID ID
}

// Code implements Command.
func (*Complete) Code() CommandCode { return CmdComplete }

// RawCommand carries a driver-private command. Its meaning is defined by the
// driver alone.
type RawCommand struct {
	// Op is the driver-defined command tag.
	Op   int
	Data []byte
}

// Code implements Command.
func (*RawCommand) Code() CommandCode { return CmdRaw }
