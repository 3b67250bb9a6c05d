// Package scenario runs scripted sequences of controller operations against
// a registry and checks their outcomes.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/irqhal/irq"
	"gopkg.in/yaml.v3"
)

// The step operations.
const (
	OpInit          = "init"
	OpRegister      = "register"
	OpUnregister    = "unregister"
	OpEnable        = "enable"
	OpDisable       = "disable"
	OpVectorEnable  = "vector_enable"
	OpVectorDisable = "vector_disable"
	OpGetThreshold  = "get_threshold"
	OpSetThreshold  = "set_threshold"
	OpGetPriority   = "get_priority"
	OpSetPriority   = "set_priority"
	OpCommand       = "command"
	OpTrigger       = "trigger"
	OpAdvanceTime   = "advance_time"
)

var knownOps = map[string]bool{
	OpInit:          true,
	OpRegister:      true,
	OpUnregister:    true,
	OpEnable:        true,
	OpDisable:       true,
	OpVectorEnable:  true,
	OpVectorDisable: true,
	OpGetThreshold:  true,
	OpSetThreshold:  true,
	OpGetPriority:   true,
	OpSetPriority:   true,
	OpCommand:       true,
	OpTrigger:       true,
	OpAdvanceTime:   true,
}

// Step is one operation of a script.
type Step struct {
	Op         string  `yaml:"op"`
	Controller string  `yaml:"controller"`
	ID         irq.ID  `yaml:"id,omitempty"`
	Value      uint64  `yaml:"value,omitempty"`
	Mode       string  `yaml:"mode,omitempty"`
	Command    string  `yaml:"command,omitempty"`
	Hart       int     `yaml:"hart,omitempty"`
	Data       string  `yaml:"data,omitempty"`
	Expect     string  `yaml:"expect,omitempty"`
	Want       *uint64 `yaml:"want,omitempty"`
}

func (s Step) String() string {
	var b strings.Builder

	b.WriteString(s.Op)
	b.WriteString(" ")
	b.WriteString(s.Controller)

	switch s.Op {
	case OpInit, OpGetThreshold, OpSetThreshold, OpCommand, OpAdvanceTime:
	default:
		b.WriteString(" id ")
		b.WriteString(strconv.Itoa(int(s.ID)))
	}

	return b.String()
}

// Target parses the controller address, such as "plic/0".
func (s Step) Target() (irq.Kind, int, error) {
	kindName, indexText, found := strings.Cut(s.Controller, "/")
	if !found {
		indexText = "0"
	}

	kind, err := irq.ParseKind(kindName)
	if err != nil {
		return 0, 0, err
	}

	index, err := strconv.Atoi(indexText)
	if err != nil {
		return 0, 0, fmt.Errorf("bad controller index %q", indexText)
	}

	return kind, index, nil
}

// expected returns the error the step expects, nil for success. known is
// false for an unknown expectation name.
func (s Step) expected() (want error, known bool) {
	if s.Expect == "" {
		return nil, true
	}

	return irq.ParseErrorCode(s.Expect)
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load reads a script from a file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return Script{}, fmt.Errorf("scenario %s: %w", path, err)
	}

	if s.Name == "" {
		s.Name = path
	}

	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var s Script

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("decoding scenario: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Script{}, err
	}

	return s, nil
}

// Validate checks every step of the script without running it.
func (s Script) Validate() error {
	var errs []error

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (s Step) validate() error {
	if !knownOps[s.Op] {
		return fmt.Errorf("unknown op %q", s.Op)
	}

	if _, _, err := s.Target(); err != nil {
		return err
	}

	if _, known := s.expected(); !known {
		return fmt.Errorf("unknown expectation %q", s.Expect)
	}

	switch s.Op {
	case OpVectorEnable:
		if _, err := irq.ParseVectorMode(s.Mode); err != nil {
			return err
		}
	case OpCommand:
		if _, err := s.buildCommand(); err != nil {
			return err
		}
	}

	return nil
}

func (s Step) buildCommand() (irq.Command, error) {
	code, err := irq.ParseCommandCode(s.Command)
	if err != nil {
		return nil, err
	}

	switch code {
	case irq.CmdTimeGet:
		return &irq.TimeGet{}, nil
	case irq.CmdTimeCompareSet:
		return &irq.TimeCompareSet{Hart: s.Hart, Time: s.Value}, nil
	case irq.CmdTimeCompareGet:
		return &irq.TimeCompareGet{Hart: s.Hart}, nil
	case irq.CmdSoftwareIPISet:
		return &irq.SoftwareIPISet{Hart: s.Hart}, nil
	case irq.CmdSoftwareIPIClear:
		return &irq.SoftwareIPIClear{Hart: s.Hart}, nil
	case irq.CmdSoftwareIPIGet:
		return &irq.SoftwareIPIGet{Hart: s.Hart}, nil
	case irq.CmdClaim:
		return &irq.Claim{}, nil
	case irq.CmdComplete:
		return &irq.Complete{ID: s.ID}, nil
	case irq.CmdRaw:
		return &irq.RawCommand{Op: int(s.Value), Data: []byte(s.Data)}, nil
	}

	return nil, fmt.Errorf("command %s cannot be scripted", code)
}
