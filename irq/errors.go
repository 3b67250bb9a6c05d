package irq

import (
	"errors"
	"fmt"
)

// The error taxonomy shared by every controller. Drivers wrap these in an
// *Error; callers test with errors.Is.
var (
	// ErrInvalidID reports an id outside the controller's declared range.
	ErrInvalidID = errors.New("invalid interrupt id")

	// ErrInvalidMode reports a vector mode that the controller does not
	// support for the id.
	ErrInvalidMode = errors.New("invalid vector mode")

	// ErrUnsupported reports an operation the controller kind does not
	// implement.
	ErrUnsupported = errors.New("operation not supported")

	// ErrOutOfRange reports a priority or threshold beyond the declared
	// bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrNotFound reports a registry lookup for an unknown kind and index.
	ErrNotFound = errors.New("controller not found")

	// ErrDuplicateController reports two controllers registered under the
	// same kind and index during bring-up.
	ErrDuplicateController = errors.New("controller already registered")

	// ErrAlreadySet reports a second attempt to publish the default
	// registry.
	ErrAlreadySet = errors.New("default registry already set")
)

// NoID is used in an Error when the failing operation is not scoped to an id.
const NoID ID = -1

// Error is the error returned by controller operations.
type Error struct {
	Op         string
	Controller string
	ID         ID
	Err        error
}

// NewError creates an Error for the operation op on the controller.
func NewError(op string, c Named, id ID, err error) *Error {
	name := ""
	if c != nil {
		name = c.Name()
	}

	return &Error{
		Op:         op,
		Controller: name,
		ID:         id,
		Err:        err,
	}
}

func (e *Error) Error() string {
	if e.ID == NoID {
		return fmt.Sprintf("%s: %s: %v", e.Controller, e.Op, e.Err)
	}

	return fmt.Sprintf("%s: %s id %d: %v", e.Controller, e.Op, e.ID, e.Err)
}

// Unwrap returns the taxonomy sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}

var errorCodes = []struct {
	code string
	err  error
}{
	{"invalid_id", ErrInvalidID},
	{"invalid_mode", ErrInvalidMode},
	{"unsupported", ErrUnsupported},
	{"out_of_range", ErrOutOfRange},
	{"not_found", ErrNotFound},
}

// ErrorCode returns a short name for the taxonomy error in err, such as
// "out_of_range". It returns "ok" for nil and "error" for anything else.
func ErrorCode(err error) string {
	if err == nil {
		return "ok"
	}

	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return "error"
}

// ParseErrorCode returns the error named by an ErrorCode result. "ok" gives
// nil.
func ParseErrorCode(code string) (error, bool) {
	if code == "ok" {
		return nil, true
	}

	for _, c := range errorCodes {
		if c.code == code {
			return c.err, true
		}
	}

	return nil, false
}
