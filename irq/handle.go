package irq

// The names of the dispatched operations, as reported in Op.
const (
	OpInit            = "init"
	OpRegisterHandler = "register_handler"
	OpEnable          = "enable"
	OpDisable         = "disable"
	OpVectorEnable    = "vector_enable"
	OpVectorDisable   = "vector_disable"
	OpGetThreshold    = "get_threshold"
	OpSetThreshold    = "set_threshold"
	OpGetPriority     = "get_priority"
	OpSetPriority     = "set_priority"
	OpCommandRequest  = "command_request"
	OpTrigger         = "trigger"
)

// Op describes one operation dispatched through a Handle. It is the item of
// the HookPosBeforeOp and HookPosAfterOp hooks.
type Op struct {
	Name       string
	Controller string
	Kind       Kind
	Index      int
	ID         ID
	Mode       VectorMode
	Command    CommandCode
	Value      uint64
	Result     int64
	Err        error
}

// Handle is a non-owning reference to a controller. Handles are small values
// that may be copied and compared freely. The zero Handle refers to nothing
// and must not be used.
type Handle struct {
	c     Controller
	hooks *HookableBase
}

// NewHandle creates a Handle that dispatches to c without hooks.
func NewHandle(c Controller) Handle {
	return Handle{c: c}
}

// Valid tells if the handle refers to a controller.
func (h Handle) Valid() bool {
	return h.c != nil
}

// Controller returns the controller behind the handle.
func (h Handle) Controller() Controller {
	return h.c
}

// Name returns the name of the controller.
func (h Handle) Name() string {
	return h.c.Name()
}

// Kind returns the kind of the controller.
func (h Handle) Kind() Kind {
	return h.c.Kind()
}

// Index returns the instance index of the controller.
func (h Handle) Index() int {
	return h.c.Index()
}

// Capabilities returns the capabilities of the controller.
func (h Handle) Capabilities() Capabilities {
	return h.c.Capabilities()
}

// Init initializes the controller. It must be called exactly once, before
// any other operation.
func (h Handle) Init() {
	op := h.begin(OpInit, NoID)
	h.c.Init()
	h.end(op, 0, nil)
}

// RegisterHandler installs or replaces the handler for id.
func (h Handle) RegisterHandler(id ID, handler Handler, data any) error {
	op := h.begin(OpRegisterHandler, id)
	err := h.c.RegisterHandler(id, handler, data)
	h.end(op, 0, err)

	return err
}

// Enable turns on delivery for id. Register the handler first; a trigger on
// an enabled id without a handler has no defined effect.
func (h Handle) Enable(id ID) error {
	op := h.begin(OpEnable, id)
	err := h.c.Enable(id)
	h.end(op, 0, err)

	return err
}

// Disable turns off delivery for id. A handler that is already running is
// allowed to complete.
func (h Handle) Disable(id ID) error {
	op := h.begin(OpDisable, id)
	err := h.c.Disable(id)
	h.end(op, 0, err)

	return err
}

// VectorEnable selects the vector mode of id. It does not enable the id.
func (h Handle) VectorEnable(id ID, mode VectorMode) error {
	op := h.begin(OpVectorEnable, id)
	if op != nil {
		op.Mode = mode
	}

	err := h.c.VectorEnable(id, mode)
	h.end(op, 0, err)

	return err
}

// VectorDisable clears the vector mode of id. It does not disable the id.
func (h Handle) VectorDisable(id ID) error {
	op := h.begin(OpVectorDisable, id)
	err := h.c.VectorDisable(id)
	h.end(op, 0, err)

	return err
}

// Threshold returns the global priority cutoff.
func (h Handle) Threshold() (uint32, error) {
	op := h.begin(OpGetThreshold, NoID)
	v, err := h.c.Threshold()
	h.end(op, int64(v), err)

	return v, err
}

// SetThreshold sets the global priority cutoff.
func (h Handle) SetThreshold(level uint32) error {
	op := h.begin(OpSetThreshold, NoID)
	if op != nil {
		op.Value = uint64(level)
	}

	err := h.c.SetThreshold(level)
	h.end(op, 0, err)

	return err
}

// Priority returns the priority of id.
func (h Handle) Priority(id ID) (uint32, error) {
	op := h.begin(OpGetPriority, id)
	v, err := h.c.Priority(id)
	h.end(op, int64(v), err)

	return v, err
}

// SetPriority sets the priority of id.
func (h Handle) SetPriority(id ID, priority uint32) error {
	op := h.begin(OpSetPriority, id)
	if op != nil {
		op.Value = uint64(priority)
	}

	err := h.c.SetPriority(id, priority)
	h.end(op, 0, err)

	return err
}

// CommandRequest runs a controller-specific command.
func (h Handle) CommandRequest(cmd Command) (int32, error) {
	op := h.begin(OpCommandRequest, NoID)
	if op != nil && cmd != nil {
		op.Command = cmd.Code()
	}

	v, err := h.c.CommandRequest(cmd)
	h.end(op, int64(v), err)

	return v, err
}

// Trigger asserts the interrupt id on a simulated controller. Controllers
// that cannot be driven from software report ErrUnsupported.
func (h Handle) Trigger(id ID) error {
	op := h.begin(OpTrigger, id)

	var err error
	if s, ok := h.c.(Simulated); ok {
		err = s.Trigger(id)
	} else {
		err = NewError(OpTrigger, h.c, id, ErrUnsupported)
	}

	h.end(op, 0, err)

	return err
}

func (h Handle) begin(name string, id ID) *Op {
	if h.hooks == nil || h.hooks.NumHooks() == 0 {
		return nil
	}

	op := &Op{
		Name:       name,
		Controller: h.c.Name(),
		Kind:       h.c.Kind(),
		Index:      h.c.Index(),
		ID:         id,
	}

	h.hooks.InvokeHook(HookCtx{Domain: h.c, Pos: HookPosBeforeOp, Item: op})

	return op
}

func (h Handle) end(op *Op, result int64, err error) {
	if op == nil {
		return
	}

	op.Result = result
	op.Err = err

	h.hooks.InvokeHook(HookCtx{Domain: h.c, Pos: HookPosAfterOp, Item: op})
}
