package irq

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookPosBeforeOp triggers before a Handle dispatches an operation. The item
// is an *Op.
var HookPosBeforeOp = &HookPos{Name: "BeforeOp"}

// HookPosAfterOp triggers after a Handle dispatches an operation. The item is
// the *Op with its result filled in.
var HookPosAfterOp = &HookPos{Name: "AfterOp"}

// HookPosDelivered triggers when a controller invokes a handler. The item is
// a Delivery.
var HookPosDelivered = &HookPos{Name: "Delivered"}

// HookPosSpurious triggers when a trigger reaches an enabled id with no
// handler, which has no defined effect. The item is a Delivery.
var HookPosSpurious = &HookPos{Name: "Spurious"}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	Domain Named
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// HookFunc adapts a function to the Hook interface. HookFunc values cannot be
// compared, so each one must be registered only once.
type HookFunc func(ctx HookCtx)

// Func implements Hook.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	if _, ok := hook.(HookFunc); ok {
		return
	}

	for _, existing := range h.hookList {
		if existing == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook triggers the register Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}

// Delivery describes one interrupt reaching, or failing to reach, a handler.
type Delivery struct {
	Controller string
	ID         ID
	Mode       VectorMode
	Vectored   bool
}
