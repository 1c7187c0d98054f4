package zeroconf

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/grandcat/zeroconf"
	machinetalk "github.com/machinekit/go-machinetalk"
)

func init() {
	registrars["builtin"] = func(log machinetalk.Logger) (Registrar, error) {
		return NewBuiltinRegistrar(log, nil), nil
	}
}

// BuiltinRegistrar implements Registrar using the grandcat/zeroconf library,
// which provides a pure-Go mDNS responder. Every committed entry group runs
// its own responder. The address family of records is not configurable
// and subtypes are not announced.
type BuiltinRegistrar struct {
	log    machinetalk.Logger
	ifaces []net.Interface

	// groups with a running responder
	groups     []*builtinEntryGroup
	groupsLock sync.Mutex
}

// NewBuiltinRegistrar creates a new built-in mDNS service registrar.
// If ifaces is empty, the service will be advertised on all interfaces.
func NewBuiltinRegistrar(log machinetalk.Logger, ifaces []net.Interface) *BuiltinRegistrar {
	return &BuiltinRegistrar{log: log, ifaces: ifaces}
}

func (b *BuiltinRegistrar) HostNameFqdn(context.Context) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed getting hostname: %w", err)
	}

	// same as avahi: the first label of the host name in the .local domain
	hostname, _, _ = strings.Cut(hostname, ".")
	return hostname + ".local", nil
}

func (b *BuiltinRegistrar) EntryGroupNew(context.Context) (EntryGroup, error) {
	return &builtinEntryGroup{registrar: b}, nil
}

// Close stops the responders of all groups created by this registrar.
func (b *BuiltinRegistrar) Close() error {
	b.groupsLock.Lock()
	groups := b.groups
	b.groups = nil
	b.groupsLock.Unlock()

	for _, g := range groups {
		g.shutdown()
	}

	return nil
}

func (b *BuiltinRegistrar) track(g *builtinEntryGroup) {
	b.groupsLock.Lock()
	defer b.groupsLock.Unlock()
	b.groups = append(b.groups, g)
}

func (b *BuiltinRegistrar) untrack(g *builtinEntryGroup) {
	b.groupsLock.Lock()
	defer b.groupsLock.Unlock()

	for i, gg := range b.groups {
		if gg == g {
			b.groups = append(b.groups[:i], b.groups[i+1:]...)
			break
		}
	}
}

func (b *BuiltinRegistrar) interfaces(loopback bool) ([]net.Interface, error) {
	if !loopback {
		return b.ifaces, nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed listing network interfaces: %w", err)
	}

	var loopbacks []net.Interface
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			loopbacks = append(loopbacks, iface)
		}
	}

	if len(loopbacks) == 0 {
		return nil, fmt.Errorf("no loopback interface found")
	}

	return loopbacks, nil
}

type builtinEntryGroup struct {
	registrar *BuiltinRegistrar

	lock     sync.Mutex
	rec      *ServiceRecord
	subtypes []string
	server   *zeroconf.Server
}

func (g *builtinEntryGroup) AddService(_ context.Context, rec ServiceRecord) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.rec != nil {
		return fmt.Errorf("entry group already contains service %s", g.rec.Name)
	}

	g.rec = &rec
	return nil
}

func (g *builtinEntryGroup) AddServiceSubtype(_ context.Context, rec ServiceRecord, subtype string) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.rec == nil || g.rec.Name != rec.Name || g.rec.Type != rec.Type {
		return fmt.Errorf("no service %s in entry group", rec.Name)
	}

	g.subtypes = append(g.subtypes, subtypeLabel(subtype))
	return nil
}

func (g *builtinEntryGroup) Commit(context.Context) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.rec == nil {
		return fmt.Errorf("entry group is empty")
	} else if g.server != nil {
		return fmt.Errorf("entry group already committed")
	}

	ifaces, err := g.registrar.interfaces(g.rec.Loopback)
	if err != nil {
		return err
	}

	// grandcat/zeroconf v1.0.0 has no subtype records, browsers filter on
	// the service= text record instead
	service := g.rec.Type
	if len(g.subtypes) > 0 {
		g.registrar.log.Debugf("builtin responder does not announce subtypes %v", g.subtypes)
	}

	domain := g.rec.Domain
	if len(domain) == 0 {
		domain = "local."
	}

	if len(g.rec.Host) == 0 {
		g.server, err = zeroconf.Register(g.rec.Name, service, domain, g.rec.Port, g.rec.Text, ifaces)
	} else {
		var ips []string
		ips, err = net.LookupHost(g.rec.Host)
		if err != nil {
			return fmt.Errorf("failed resolving host %s: %w", g.rec.Host, err)
		}

		g.server, err = zeroconf.RegisterProxy(g.rec.Name, service, domain, g.rec.Port, g.rec.Host, ips, g.rec.Text, ifaces)
	}
	if err != nil {
		return fmt.Errorf("failed registering zeroconf server: %w", err)
	}

	g.registrar.track(g)
	g.registrar.log.Debugf("builtin responder announcing %s on port %d", service, g.rec.Port)
	return nil
}

func (g *builtinEntryGroup) Reset(context.Context) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.shutdownLocked()
	g.rec = nil
	g.subtypes = nil
	return nil
}

func (g *builtinEntryGroup) Free(ctx context.Context) error {
	return g.Reset(ctx)
}

func (g *builtinEntryGroup) shutdown() {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.shutdownLocked()
}

func (g *builtinEntryGroup) shutdownLocked() {
	if g.server != nil {
		g.server.Shutdown()
		g.server = nil
		g.registrar.untrack(g)
	}
}
