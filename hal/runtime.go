// Package hal drives a realtime component runtime from the outside: loading
// components into periodic threads and checking their pins.
package hal

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrExists       = errors.New("already exists")
	ErrPinDirection = errors.New("pin direction does not allow writes")
	ErrPinType      = errors.New("pin type mismatch")
	ErrBusy         = errors.New("resource in use")
	ErrNotClean     = errors.New("runtime not clean")
)

type PinType int

const (
	PinTypeBit PinType = iota + 1
	PinTypeFloat
	PinTypeS32
	PinTypeU32
)

func (t PinType) String() string {
	switch t {
	case PinTypeBit:
		return "bit"
	case PinTypeFloat:
		return "float"
	case PinTypeS32:
		return "s32"
	case PinTypeU32:
		return "u32"
	default:
		return fmt.Sprintf("PinType(%d)", int(t))
	}
}

type PinDir int

const (
	PinDirIn PinDir = 1 << iota
	PinDirOut
	PinDirIO = PinDirIn | PinDirOut
)

func (d PinDir) String() string {
	switch d {
	case PinDirIn:
		return "in"
	case PinDirOut:
		return "out"
	case PinDirIO:
		return "io"
	default:
		return fmt.Sprintf("PinDir(%d)", int(d))
	}
}

// Pin is a handle to a named pin of a loaded component.
type Pin interface {
	Name() string
	Type() PinType
	Dir() PinDir
	// Linked reports whether the pin is connected to a signal.
	Linked() bool

	Get() bool
	// Set writes an unlinked input pin.
	Set(v bool) error
}

// Runtime is a realtime component runtime.
type Runtime interface {
	// LoadRT loads a component, creating its first instance.
	LoadRT(comp string) error
	UnloadRT(comp string) error

	// NewThread creates a thread that runs its functions every period.
	NewThread(name string, period time.Duration, useFP bool) error
	DelThread(name string) error

	// AddF appends the function funct to the execution list of thread.
	AddF(funct, thread string) error
	DelF(funct, thread string) error

	StartThreads() error
	StopThreads() error

	Pin(name string) (Pin, error)

	// CheckClean returns ErrNotClean unless every component, thread and
	// function has been released.
	CheckClean() error
}
