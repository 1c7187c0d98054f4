package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	machinetalk "github.com/machinekit/go-machinetalk"
)

const (
	DefaultThreadName   = "servo-thread"
	DefaultThreadPeriod = time.Millisecond
	DefaultSettleTime   = time.Second
	defaultPollInterval = 5 * time.Millisecond
)

var ErrMismatch = errors.New("pin value mismatch")

// PinSpec is the expected shape of a component pin.
type PinSpec struct {
	Suffix string
	Type   PinType
	Dir    PinDir
}

// TruthRow sets Inputs (in the order of the component input pins) and
// expects Output to settle at Want.
type TruthRow struct {
	Inputs []bool
	Want   bool
}

// Or2Pins are the pins of the or2 component.
var Or2Pins = []PinSpec{
	{Suffix: "in0", Type: PinTypeBit, Dir: PinDirIn},
	{Suffix: "in1", Type: PinTypeBit, Dir: PinDirIn},
	{Suffix: "out", Type: PinTypeBit, Dir: PinDirOut},
}

// Or2TruthTable is the truth table of the or2 component.
var Or2TruthTable = []TruthRow{
	{Inputs: []bool{false, false}, Want: false},
	{Inputs: []bool{true, false}, Want: true},
	{Inputs: []bool{false, true}, Want: true},
	{Inputs: []bool{true, true}, Want: true},
}

// Verifier loads one component into a thread of a Runtime and checks its
// pins against expectations.
type Verifier struct {
	log machinetalk.Logger
	rt  Runtime

	Component string
	Thread    string
	Period    time.Duration
	// SettleTime bounds how long an output may take to reach its value,
	// DefaultSettleTime when not positive.
	SettleTime time.Duration
	// PollInterval is the initial wait between two reads of an output.
	PollInterval time.Duration

	loaded bool
}

func NewVerifier(log machinetalk.Logger, rt Runtime, component string) *Verifier {
	return &Verifier{
		log:          log.WithField("component", component),
		rt:           rt,
		Component:    component,
		Thread:       DefaultThreadName,
		Period:       DefaultThreadPeriod,
		SettleTime:   DefaultSettleTime,
		PollInterval: defaultPollInterval,
	}
}

// funct is the name of the function and the pin prefix of the first instance.
func (v *Verifier) funct() string {
	return v.Component + ".0"
}

func (v *Verifier) pinName(suffix string) string {
	return v.funct() + "." + suffix
}

// Setup loads the component, adds its function to a new FP thread and
// starts all threads.
func (v *Verifier) Setup() error {
	if err := v.rt.LoadRT(v.Component); err != nil {
		return fmt.Errorf("failed loading %s: %w", v.Component, err)
	}
	v.loaded = true

	if err := v.rt.NewThread(v.Thread, v.Period, true); err != nil {
		return fmt.Errorf("failed creating thread %s: %w", v.Thread, err)
	}

	if err := v.rt.AddF(v.funct(), v.Thread); err != nil {
		return fmt.Errorf("failed adding %s to %s: %w", v.funct(), v.Thread, err)
	}

	if err := v.rt.StartThreads(); err != nil {
		return fmt.Errorf("failed starting threads: %w", err)
	}

	v.log.Debugf("loaded into %s with period %s", v.Thread, v.Period)
	return nil
}

// Teardown reverses Setup and checks that the runtime is left clean. It is
// safe to call after a partially failed Setup.
func (v *Verifier) Teardown() error {
	if !v.loaded {
		return nil
	}

	var errs []error
	if err := v.rt.StopThreads(); err != nil {
		errs = append(errs, fmt.Errorf("failed stopping threads: %w", err))
	}
	if err := v.rt.DelF(v.funct(), v.Thread); err != nil && !errors.Is(err, ErrNotFound) {
		errs = append(errs, fmt.Errorf("failed removing %s from %s: %w", v.funct(), v.Thread, err))
	}
	if err := v.rt.DelThread(v.Thread); err != nil && !errors.Is(err, ErrNotFound) {
		errs = append(errs, fmt.Errorf("failed deleting thread %s: %w", v.Thread, err))
	}
	if err := v.rt.UnloadRT(v.Component); err != nil {
		errs = append(errs, fmt.Errorf("failed unloading %s: %w", v.Component, err))
	}
	v.loaded = false

	if err := errors.Join(errs...); err != nil {
		return err
	}

	return v.rt.CheckClean()
}

// CheckPins verifies type and direction of the given pins and that none of
// them is linked.
func (v *Verifier) CheckPins(specs []PinSpec) error {
	for _, spec := range specs {
		pin, err := v.rt.Pin(v.pinName(spec.Suffix))
		if err != nil {
			return err
		}

		if pin.Type() != spec.Type {
			return fmt.Errorf("%w: %s is %s, want %s", ErrPinType, pin.Name(), pin.Type(), spec.Type)
		} else if pin.Dir() != spec.Dir {
			return fmt.Errorf("%w: %s is %s, want %s", ErrMismatch, pin.Name(), pin.Dir(), spec.Dir)
		} else if pin.Linked() {
			return fmt.Errorf("%w: %s is linked", ErrMismatch, pin.Name())
		}
	}

	return nil
}

// WaitFor polls the pin until it reads want or SettleTime elapses.
func (v *Verifier) WaitFor(ctx context.Context, suffix string, want bool) error {
	pin, err := v.rt.Pin(v.pinName(suffix))
	if err != nil {
		return err
	}

	var last bool
	check := func() error {
		last = pin.Get()
		if last != want {
			return ErrMismatch
		}
		return nil
	}

	// a zero MaxElapsedTime never stops retrying
	settle, poll := v.SettleTime, v.PollInterval
	if settle <= 0 {
		settle = DefaultSettleTime
	}
	if poll <= 0 {
		poll = defaultPollInterval
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = poll
	b.MaxInterval = 10 * poll
	b.MaxElapsedTime = settle

	if err := backoff.Retry(check, backoff.WithContext(b, ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s is %t after %s, want %t", ErrMismatch, pin.Name(), last, settle, want)
	}

	return nil
}

// CheckTruthTable writes every row to inputs and waits for output to settle
// at the expected value.
func (v *Verifier) CheckTruthTable(ctx context.Context, inputs []string, output string, table []TruthRow) error {
	pins := make([]Pin, len(inputs))
	for i, suffix := range inputs {
		pin, err := v.rt.Pin(v.pinName(suffix))
		if err != nil {
			return err
		}
		pins[i] = pin
	}

	for _, row := range table {
		if len(row.Inputs) != len(pins) {
			return fmt.Errorf("truth table row has %d inputs, component has %d", len(row.Inputs), len(pins))
		}

		for i, pin := range pins {
			if err := pin.Set(row.Inputs[i]); err != nil {
				return fmt.Errorf("failed setting %s: %w", pin.Name(), err)
			}
		}

		if err := v.WaitFor(ctx, output, row.Want); err != nil {
			return fmt.Errorf("inputs %v: %w", row.Inputs, err)
		}

		v.log.Tracef("inputs %v settled at %t", row.Inputs, row.Want)
	}

	return nil
}
