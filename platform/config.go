// Package platform brings up the interrupt controllers of a machine from a
// YAML description and publishes them in a registry.
package platform

import (
	"errors"
	"fmt"
	"os"

	"github.com/sarchlab/irqhal/corelocal"
	"github.com/sarchlab/irqhal/irq"
	"gopkg.in/yaml.v3"
)

// Ref names a controller by kind and instance index.
type Ref struct {
	Kind  irq.Kind `yaml:"kind"`
	Index int      `yaml:"index"`
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.Index)
}

// ControllerConfig describes one controller instance. Only the fields of its
// kind are used; zero values select the builder defaults.
type ControllerConfig struct {
	Kind  irq.Kind `yaml:"kind"`
	Index int      `yaml:"index"`
	Name  string   `yaml:"name,omitempty"`

	// Core-local.
	Hart            int  `yaml:"hart,omitempty"`
	LocalInterrupts *int `yaml:"local_interrupts,omitempty"`

	// Timer-comparator. Empty means every hart.
	Harts []int `yaml:"harts,omitempty"`

	// Platform prioritized.
	Sources     int     `yaml:"sources,omitempty"`
	MaxPriority *uint32 `yaml:"max_priority,omitempty"`
	Parent      *Ref    `yaml:"parent,omitempty"`
	ParentID    *irq.ID `yaml:"parent_id,omitempty"`

	// Compact vectored.
	Interrupts int `yaml:"interrupts,omitempty"`
	IntctlBits int `yaml:"intctl_bits,omitempty"`
}

// Ref returns the kind and index of the controller.
func (c ControllerConfig) Ref() Ref {
	return Ref{Kind: c.Kind, Index: c.Index}
}

// DisplayName returns the configured name, or one derived from the kind and
// the index.
func (c ControllerConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}

	return fmt.Sprintf("%s%d", c.Kind, c.Index)
}

// Config describes the controllers of a machine.
type Config struct {
	Harts       int                `yaml:"harts"`
	Controllers []ControllerConfig `yaml:"controllers"`
}

// Load reads a machine description from a file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading platform %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("platform %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes and validates a machine description.
func Parse(data []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding platform: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that the description can be brought up. It reports every
// problem found.
func (cfg Config) Validate() error {
	var errs []error

	if cfg.Harts <= 0 {
		errs = append(errs, errors.New("harts must be positive"))
	}

	seen := make(map[Ref]bool)
	cpus := make(map[Ref]ControllerConfig)
	hartOwners := make(map[int]Ref)

	for _, c := range cfg.Controllers {
		if seen[c.Ref()] {
			errs = append(errs, fmt.Errorf("%s: %w", c.Ref(),
				irq.ErrDuplicateController))
		}

		seen[c.Ref()] = true

		if c.Kind != irq.KindCoreLocal {
			continue
		}

		cpus[c.Ref()] = c

		if c.Hart < 0 || c.Hart >= cfg.Harts {
			errs = append(errs, fmt.Errorf("%s: hart %d out of range",
				c.Ref(), c.Hart))
		} else if owner, taken := hartOwners[c.Hart]; taken {
			errs = append(errs, fmt.Errorf("%s: hart %d already served by %s",
				c.Ref(), c.Hart, owner))
		} else {
			hartOwners[c.Hart] = c.Ref()
		}
	}

	for _, c := range cfg.Controllers {
		errs = append(errs, cfg.validateController(c, cpus, hartOwners)...)
	}

	return errors.Join(errs...)
}

func (cfg Config) validateController(
	c ControllerConfig,
	cpus map[Ref]ControllerConfig,
	hartOwners map[int]Ref,
) []error {
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs,
			fmt.Errorf("%s: %s", c.Ref(), fmt.Sprintf(format, args...)))
	}

	switch c.Kind {
	case irq.KindCoreLocal:
		if c.LocalInterrupts != nil && *c.LocalInterrupts < 0 {
			fail("local_interrupts must not be negative")
		}
	case irq.KindTimerComparator:
		if len(c.Harts) == 0 && len(hartOwners) == 0 {
			fail("no core-local controller to serve")
		}

		for _, h := range c.Harts {
			if _, found := hartOwners[h]; !found {
				fail("hart %d has no core-local controller", h)
			}
		}
	case irq.KindPlatformPrioritized:
		if c.Sources < 0 {
			fail("sources must not be negative")
		}

		parent := c.parentRef()
		cpu, found := cpus[parent]
		if !found {
			fail("parent %s is not a core-local controller", parent)
			break
		}

		if c.ParentID != nil && !cpu.localIDs().Contains(*c.ParentID) {
			fail("parent_id %d is not an interrupt of %s", *c.ParentID, parent)
		}
	case irq.KindCompactVectored:
		if c.Interrupts < 0 {
			fail("interrupts must not be negative")
		}

		if c.IntctlBits < 0 || c.IntctlBits > 8 {
			fail("intctl_bits must be between 1 and 8")
		}
	default:
		fail("unknown kind")
	}

	return errs
}

func (c ControllerConfig) localIDs() irq.IDSet {
	if c.LocalInterrupts == nil {
		return corelocal.IDs(corelocal.DefaultLocalInterrupts)
	}

	return corelocal.IDs(*c.LocalInterrupts)
}

func (c ControllerConfig) parentRef() Ref {
	if c.Parent == nil {
		return Ref{Kind: irq.KindCoreLocal}
	}

	return *c.Parent
}
