package zeroconf

import (
	"context"
	"fmt"
	"sort"

	machinetalk "github.com/machinekit/go-machinetalk"
)

// Registrar is a connection to a service discovery daemon.
// Implementations can use different backends like built-in mDNS or avahi-daemon.
type Registrar interface {
	// HostNameFqdn returns the fully qualified host name known to the daemon.
	HostNameFqdn(ctx context.Context) (string, error)

	// EntryGroupNew creates a new, empty entry group. Records added to the
	// group become visible only after Commit.
	EntryGroupNew(ctx context.Context) (EntryGroup, error)

	// Close releases the connection to the daemon. Committed groups are
	// retracted by the daemon when their owner goes away.
	Close() error
}

// EntryGroup is the atomic unit of announcement: a set of service and
// subtype registrations committed together.
type EntryGroup interface {
	// AddService adds the primary service record to the group.
	AddService(ctx context.Context, rec ServiceRecord) error

	// AddServiceSubtype associates subtype with a record previously added
	// with AddService.
	AddServiceSubtype(ctx context.Context, rec ServiceRecord, subtype string) error

	// Commit publishes all records in the group.
	Commit(ctx context.Context) error

	// Reset retracts everything published by the group, the group can be
	// filled and committed again afterwards.
	Reset(ctx context.Context) error

	// Free releases the group on the daemon, it must not be used afterwards.
	Free(ctx context.Context) error
}

type registrarFactory func(log machinetalk.Logger) (Registrar, error)

var registrars = map[string]registrarFactory{}

// NewRegistrar connects to the backend named name ("avahi" or "builtin").
func NewRegistrar(name string, log machinetalk.Logger) (Registrar, error) {
	factory, ok := registrars[name]
	if !ok {
		return nil, fmt.Errorf("unknown zeroconf backend: %s (available: %v)", name, Backends())
	}

	return factory(log)
}

// Backends lists the names accepted by NewRegistrar.
func Backends() []string {
	names := make([]string, 0, len(registrars))
	for name := range registrars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
