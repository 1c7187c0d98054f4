package sim

import (
	"fmt"
	"sync/atomic"

	"github.com/machinekit/go-machinetalk/hal"
)

type pin struct {
	name string
	typ  hal.PinType
	dir  hal.PinDir

	value atomic.Bool
}

func (p *pin) Name() string      { return p.name }
func (p *pin) Type() hal.PinType { return p.typ }
func (p *pin) Dir() hal.PinDir   { return p.dir }
func (p *pin) Get() bool         { return p.value.Load() }

// Linked is always false, the simulation has no signals.
func (p *pin) Linked() bool { return false }

func (p *pin) Set(v bool) error {
	if p.dir == hal.PinDirOut {
		return fmt.Errorf("%w: %s", hal.ErrPinDirection, p.name)
	}

	p.value.Store(v)
	return nil
}

// pins are the pins of one component instance, by suffix.
type pins map[string]*pin

func (p pins) get(suffix string) bool {
	return p[suffix].value.Load()
}

func (p pins) set(suffix string, v bool) {
	p[suffix].value.Store(v)
}
