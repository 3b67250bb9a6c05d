package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"github.com/rs/xid"
	"github.com/sarchlab/irqhal/irq"
)

// ErrExpectation reports a step whose outcome differs from what the script
// expects.
var ErrExpectation = errors.New("expectation not met")

// Result is the outcome of one step.
type Result struct {
	Step       int
	Op         string
	Value      uint64
	Err        error
	Deliveries []irq.Delivery
	Spurious   []irq.Delivery
	Handled    []string
}

// Report collects the results of one run.
type Report struct {
	RunID   xid.ID
	Script  string
	Results []Result
}

// Failed returns the number of steps that returned an error, expected or
// not.
func (r Report) Failed() int {
	n := 0

	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}

	return n
}

type timeAdvancer interface {
	AdvanceTime(delta uint64) error
}

// Runner executes scripts. It is also a hook that collects the deliveries
// made during each step.
type Runner struct {
	log     logr.Logger
	current *Result
}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{log: logr.Discard()}
}

// WithLogger sets the logger of the runner.
func (r *Runner) WithLogger(logger logr.Logger) *Runner {
	r.log = logger
	return r
}

// Func implements irq.Hook.
func (r *Runner) Func(ctx irq.HookCtx) {
	if r.current == nil {
		return
	}

	d, ok := ctx.Item.(irq.Delivery)
	if !ok {
		return
	}

	switch ctx.Pos {
	case irq.HookPosDelivered:
		r.current.Deliveries = append(r.current.Deliveries, d)
	case irq.HookPosSpurious:
		r.current.Spurious = append(r.current.Spurious, d)
	}
}

// Run executes the steps of the script in order. It stops at the first step
// whose outcome does not match its expectation and returns the results so
// far.
func (r *Runner) Run(reg *irq.Registry, s Script) (Report, error) {
	report := Report{RunID: xid.New(), Script: s.Name}

	if err := s.Validate(); err != nil {
		return report, err
	}

	r.attach(reg)

	for i, step := range s.Steps {
		res := Result{Step: i, Op: step.Op}

		r.current = &res
		res.Value, res.Err = r.exec(reg, step)
		r.current = nil

		report.Results = append(report.Results, res)

		r.log.V(1).Info("step",
			"run", report.RunID.String(),
			"step", i,
			"op", step.String(),
			"value", res.Value,
			"result", irq.ErrorCode(res.Err))

		if err := check(step, res); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i, step, err)
		}
	}

	return report, nil
}

func (r *Runner) attach(reg *irq.Registry) {
	for _, h := range reg.Handles() {
		hookable, ok := h.Controller().(irq.Hookable)
		if !ok || r.attachedTo(hookable) {
			continue
		}

		hookable.AcceptHook(r)
	}
}

func (r *Runner) attachedTo(hookable irq.Hookable) bool {
	for _, hook := range hookable.Hooks() {
		if hook == irq.Hook(r) {
			return true
		}
	}

	return false
}

func check(step Step, res Result) error {
	want, _ := step.expected()

	switch {
	case want == nil && res.Err != nil:
		return fmt.Errorf("%w: unexpected error: %v", ErrExpectation, res.Err)
	case want != nil && !errors.Is(res.Err, want):
		return fmt.Errorf("%w: want %s, got %s",
			ErrExpectation, step.Expect, irq.ErrorCode(res.Err))
	case step.Want != nil && res.Value != *step.Want:
		return fmt.Errorf("%w: want value %d, got %d",
			ErrExpectation, *step.Want, res.Value)
	}

	return nil
}

func (r *Runner) handle(id irq.ID, data any) {
	name, _ := data.(string)
	r.log.V(2).Info("handler", "id", id, "data", name)

	if r.current != nil {
		r.current.Handled = append(r.current.Handled, name)
	}
}

//nolint:gocyclo
func (r *Runner) exec(reg *irq.Registry, step Step) (uint64, error) {
	kind, index, err := step.Target()
	if err != nil {
		return 0, err
	}

	h, err := reg.Get(kind, index)
	if err != nil {
		return 0, err
	}

	switch step.Op {
	case OpInit:
		h.Init()
		return 0, nil
	case OpRegister:
		return 0, h.RegisterHandler(step.ID, r.handle, step.Data)
	case OpUnregister:
		return 0, h.RegisterHandler(step.ID, nil, nil)
	case OpEnable:
		return 0, h.Enable(step.ID)
	case OpDisable:
		return 0, h.Disable(step.ID)
	case OpVectorEnable:
		mode, _ := irq.ParseVectorMode(step.Mode)
		return 0, h.VectorEnable(step.ID, mode)
	case OpVectorDisable:
		return 0, h.VectorDisable(step.ID)
	case OpGetThreshold:
		v, err := h.Threshold()
		return uint64(v), err
	case OpSetThreshold:
		v, err := level(h, irq.OpSetThreshold, irq.NoID, step.Value)
		if err != nil {
			return 0, err
		}

		return 0, h.SetThreshold(v)
	case OpGetPriority:
		v, err := h.Priority(step.ID)
		return uint64(v), err
	case OpSetPriority:
		v, err := level(h, irq.OpSetPriority, step.ID, step.Value)
		if err != nil {
			return 0, err
		}

		return 0, h.SetPriority(step.ID, v)
	case OpTrigger:
		return 0, h.Trigger(step.ID)
	case OpAdvanceTime:
		t, ok := h.Controller().(timeAdvancer)
		if !ok {
			return 0, irq.NewError(OpAdvanceTime, h.Controller(), irq.NoID,
				irq.ErrUnsupported)
		}

		return 0, t.AdvanceTime(step.Value)
	case OpCommand:
		return runCommand(h, step)
	}

	return 0, fmt.Errorf("unknown op %q", step.Op)
}

// level narrows a script value to a priority level. Values that do not fit
// are out of range for every controller.
func level(h irq.Handle, op string, id irq.ID, v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, irq.NewError(op, h.Controller(), id, irq.ErrOutOfRange)
	}

	return uint32(v), nil
}

func runCommand(h irq.Handle, step Step) (uint64, error) {
	cmd, err := step.buildCommand()
	if err != nil {
		return 0, err
	}

	v, err := h.CommandRequest(cmd)

	switch cmd := cmd.(type) {
	case *irq.TimeGet:
		return cmd.Time, err
	case *irq.TimeCompareGet:
		return cmd.Time, err
	case *irq.Claim:
		return uint64(cmd.ID), err
	}

	return uint64(uint32(v)), err
}
