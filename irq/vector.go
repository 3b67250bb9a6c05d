package irq

import (
	"fmt"
	"strings"
)

// VectorMode describes how a controller routes a triggered interrupt to code.
type VectorMode int

// The vector modes.
const (
	// VectorDirect sends every interrupt to one shared handler location.
	VectorDirect VectorMode = iota
	// VectorFull jumps through a per-id table.
	VectorFull
	// VectorSelective vectors only the ids that opted in.
	VectorSelective
	// VectorHardware lets the hardware itself perform the jump.
	VectorHardware
)

var vectorModeNames = [...]string{
	VectorDirect:    "direct",
	VectorFull:      "vectored",
	VectorSelective: "selective",
	VectorHardware:  "hardware",
}

func (m VectorMode) String() string {
	if m < 0 || int(m) >= len(vectorModeNames) {
		return fmt.Sprintf("VectorMode(%d)", int(m))
	}

	return vectorModeNames[m]
}

// ParseVectorMode converts a mode name such as "selective" into a VectorMode.
func ParseVectorMode(s string) (VectorMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range vectorModeNames {
		if n == name {
			return VectorMode(m), nil
		}
	}

	return 0, fmt.Errorf("unknown vector mode %q", s)
}

// VectorModeSet is a set of vector modes.
type VectorModeSet uint8

// VectorModes builds a set from the given modes.
func VectorModes(modes ...VectorMode) VectorModeSet {
	var s VectorModeSet
	for _, m := range modes {
		s |= 1 << uint(m)
	}

	return s
}

// Has tells if the mode is in the set.
func (s VectorModeSet) Has(m VectorMode) bool {
	if m < 0 || int(m) >= len(vectorModeNames) {
		return false
	}

	return s&(1<<uint(m)) != 0
}

// Empty tells if no mode is in the set.
func (s VectorModeSet) Empty() bool {
	return s == 0
}

// List returns the modes in the set in declaration order.
func (s VectorModeSet) List() []VectorMode {
	var modes []VectorMode
	for m := range vectorModeNames {
		if s.Has(VectorMode(m)) {
			modes = append(modes, VectorMode(m))
		}
	}

	return modes
}

func (s VectorModeSet) String() string {
	names := make([]string, 0, len(vectorModeNames))
	for _, m := range s.List() {
		names = append(names, m.String())
	}

	return "[" + strings.Join(names, ",") + "]"
}
