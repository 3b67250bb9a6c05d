// Package irq defines the contract that every interrupt controller driver
// implements, and the registry and handles that firmware uses to reach the
// controllers without knowing which one backs an interrupt source.
package irq

import (
	"fmt"
	"strings"
)

// Kind identifies the class of an interrupt controller.
type Kind int

// The controller kinds.
const (
	KindCoreLocal Kind = iota
	KindTimerComparator
	KindCompactVectored
	KindPlatformPrioritized
)

var kindNames = [...]string{
	KindCoreLocal:           "cpu",
	KindTimerComparator:     "clint",
	KindCompactVectored:     "clic",
	KindPlatformPrioritized: "plic",
}

// Kinds lists all the controller kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindCoreLocal,
		KindTimerComparator,
		KindCompactVectored,
		KindPlatformPrioritized,
	}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind converts a kind name such as "plic" into a Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}

	return 0, fmt.Errorf("unknown controller kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ID identifies an interrupt source within one controller instance. IDs are
// not unique across controllers.
type ID int
