package irq

// Handler is the callback invoked when an interrupt is delivered. It receives
// the id and the user data supplied at registration.
type Handler func(id ID, data any)

// Registration binds a handler and its user data to one id of one
// controller.
type Registration struct {
	ID      ID
	Handler Handler
	Data    any
}

// Invoke calls the handler with the registered id and data.
func (r Registration) Invoke() {
	r.Handler(r.ID, r.Data)
}

// HandlerTable keeps at most one registration per id. Drivers use it as the
// store behind RegisterHandler.
type HandlerTable struct {
	entries map[ID]Registration
}

// NewHandlerTable creates an empty HandlerTable.
func NewHandlerTable() *HandlerTable {
	return &HandlerTable{
		entries: make(map[ID]Registration),
	}
}

// Set installs the handler for id, replacing any previous registration. A nil
// handler removes the registration.
func (t *HandlerTable) Set(id ID, h Handler, data any) {
	if h == nil {
		delete(t.entries, id)
		return
	}

	t.entries[id] = Registration{ID: id, Handler: h, Data: data}
}

// Get returns the registration for id.
func (t *HandlerTable) Get(id ID) (Registration, bool) {
	r, ok := t.entries[id]
	return r, ok
}

// Len returns the number of registrations.
func (t *HandlerTable) Len() int {
	return len(t.entries)
}

// Reset removes all registrations.
func (t *HandlerTable) Reset() {
	clear(t.entries)
}
