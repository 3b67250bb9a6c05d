package irq

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// Controller is the capability contract of an interrupt controller. Every
// operation other than the identity methods and Init is optional; a
// controller that lacks an operation returns ErrUnsupported. Embedding
// ControllerBase provides those defaults.
type Controller interface {
	Named

	// Kind returns the fixed kind of the controller.
	Kind() Kind

	// Index returns the instance index among controllers of the same kind.
	Index() int

	// Capabilities describes the operations and ranges the controller
	// supports.
	Capabilities() Capabilities

	// Init performs the one-time setup. Calling it twice is undefined.
	Init()

	// RegisterHandler installs or replaces the handler for id.
	RegisterHandler(id ID, h Handler, data any) error

	// Enable turns on delivery for id.
	Enable(id ID) error

	// Disable turns off delivery for id. Disabling a disabled id succeeds.
	Disable(id ID) error

	// VectorEnable selects a vector mode for id.
	VectorEnable(id ID, mode VectorMode) error

	// VectorDisable clears the vector mode of id.
	VectorDisable(id ID) error

	// Threshold returns the global priority cutoff.
	Threshold() (uint32, error)

	// SetThreshold sets the global priority cutoff.
	SetThreshold(level uint32) error

	// Priority returns the priority of id.
	Priority(id ID) (uint32, error)

	// SetPriority sets the priority of id.
	SetPriority(id ID, priority uint32) error

	// CommandRequest runs a controller-specific command.
	CommandRequest(cmd Command) (int32, error)
}

// Simulated is implemented by controller models that can assert an
// interrupt line in software.
type Simulated interface {
	// Trigger asserts the interrupt id as a device would.
	Trigger(id ID) error
}

// Capabilities lets callers discover what a controller offers before using
// it.
type Capabilities struct {
	// IDs is the set of valid interrupt ids.
	IDs IDSet

	// Handlers tells if RegisterHandler is supported.
	Handlers bool

	// Priority is the per-id priority range.
	Priority Range

	// Threshold is the global threshold range.
	Threshold Range

	// VectorModes is the set of supported vector modes. Empty means no
	// vectoring.
	VectorModes VectorModeSet

	// Commands lists the command codes CommandRequest accepts.
	Commands []CommandCode
}

// SupportsCommand tells if the code is among the accepted commands.
func (c Capabilities) SupportsCommand(code CommandCode) bool {
	for _, cc := range c.Commands {
		if cc == code {
			return true
		}
	}

	return false
}
