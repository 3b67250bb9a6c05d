package irq

// ControllerBase holds the identity of a controller and provides the default
// implementation of every optional operation, which reports ErrUnsupported.
// Drivers embed it and override what their hardware supports.
type ControllerBase struct {
	HookableBase

	name  string
	kind  Kind
	index int
}

// MakeControllerBase creates a ControllerBase.
func MakeControllerBase(name string, kind Kind, index int) ControllerBase {
	return ControllerBase{
		name:  name,
		kind:  kind,
		index: index,
	}
}

// Name returns the name of the controller.
func (b *ControllerBase) Name() string {
	return b.name
}

// Kind returns the kind of the controller.
func (b *ControllerBase) Kind() Kind {
	return b.kind
}

// Index returns the instance index of the controller.
func (b *ControllerBase) Index() int {
	return b.index
}

// Init does nothing.
func (b *ControllerBase) Init() {}

// RegisterHandler reports ErrUnsupported.
func (b *ControllerBase) RegisterHandler(id ID, _ Handler, _ any) error {
	return b.Unsupported("register_handler", id)
}

// Enable reports ErrUnsupported.
func (b *ControllerBase) Enable(id ID) error {
	return b.Unsupported("enable", id)
}

// Disable reports ErrUnsupported.
func (b *ControllerBase) Disable(id ID) error {
	return b.Unsupported("disable", id)
}

// VectorEnable reports ErrUnsupported.
func (b *ControllerBase) VectorEnable(id ID, _ VectorMode) error {
	return b.Unsupported("vector_enable", id)
}

// VectorDisable reports ErrUnsupported.
func (b *ControllerBase) VectorDisable(id ID) error {
	return b.Unsupported("vector_disable", id)
}

// Threshold reports ErrUnsupported.
func (b *ControllerBase) Threshold() (uint32, error) {
	return 0, b.Unsupported("get_threshold", NoID)
}

// SetThreshold reports ErrUnsupported.
func (b *ControllerBase) SetThreshold(uint32) error {
	return b.Unsupported("set_threshold", NoID)
}

// Priority reports ErrUnsupported.
func (b *ControllerBase) Priority(id ID) (uint32, error) {
	return 0, b.Unsupported("get_priority", id)
}

// SetPriority reports ErrUnsupported.
func (b *ControllerBase) SetPriority(id ID, _ uint32) error {
	return b.Unsupported("set_priority", id)
}

// CommandRequest reports ErrUnsupported.
func (b *ControllerBase) CommandRequest(Command) (int32, error) {
	return 0, b.Unsupported("command_request", NoID)
}

// Unsupported builds the ErrUnsupported error for op.
func (b *ControllerBase) Unsupported(op string, id ID) error {
	return NewError(op, b, id, ErrUnsupported)
}

// Fail builds an error of the controller for op.
func (b *ControllerBase) Fail(op string, id ID, err error) error {
	return NewError(op, b, id, err)
}

// NotifyDelivered invokes the delivery hooks.
func (b *ControllerBase) NotifyDelivered(d Delivery) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(HookCtx{Domain: b, Pos: HookPosDelivered, Item: d})
}

// NotifySpurious invokes the spurious-trigger hooks.
func (b *ControllerBase) NotifySpurious(d Delivery) {
	if b.NumHooks() == 0 {
		return
	}

	b.InvokeHook(HookCtx{Domain: b, Pos: HookPosSpurious, Item: d})
}
