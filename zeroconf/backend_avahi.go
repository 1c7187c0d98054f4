package zeroconf

import (
	"context"
	"fmt"
	"net"

	"github.com/godbus/dbus/v5"
	machinetalk "github.com/machinekit/go-machinetalk"
)

const (
	avahiService         = "org.freedesktop.Avahi"
	avahiServerPath      = "/"
	avahiServerIface     = "org.freedesktop.Avahi.Server"
	avahiEntryGroupIface = "org.freedesktop.Avahi.EntryGroup"

	// Avahi constants
	avahiIfUnspec    = int32(-1) // AVAHI_IF_UNSPEC - use all interfaces
	avahiProtoInet   = int32(0)  // AVAHI_PROTO_INET
	avahiProtoInet6  = int32(1)  // AVAHI_PROTO_INET6
	avahiProtoUnspec = int32(-1) // AVAHI_PROTO_UNSPEC - use both IPv4 and IPv6
)

func init() {
	registrars["avahi"] = func(log machinetalk.Logger) (Registrar, error) {
		return NewAvahiRegistrar(log)
	}
}

// AvahiRegistrar implements Registrar using avahi-daemon via D-Bus.
//
// Compatibility: Requires avahi-daemon 0.6.x or later (uses stable D-Bus API).
type AvahiRegistrar struct {
	log     machinetalk.Logger
	conn    *dbus.Conn
	server  dbus.BusObject
	version string
}

// NewAvahiRegistrar connects to the system D-Bus and checks that
// avahi-daemon is reachable.
func NewAvahiRegistrar(log machinetalk.Logger) (*AvahiRegistrar, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	// Verify avahi-daemon is available by calling GetHostName (available in all versions)
	server := conn.Object(avahiService, avahiServerPath)
	var hostname string
	err = server.Call(avahiServerIface+".GetHostName", 0).Store(&hostname)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to avahi-daemon (is it running?): %w", err)
	}

	a := &AvahiRegistrar{log: log, conn: conn, server: server, version: getAvahiVersion(server)}
	log.Debugf("connected to avahi-daemon %s on %s", a.version, hostname)
	return a, nil
}

// getAvahiVersion attempts to retrieve the avahi-daemon version.
// Returns "unknown" if version cannot be determined.
func getAvahiVersion(server dbus.BusObject) string {
	// Try GetVersionString first (available in avahi 0.8+)
	var versionStr string
	if err := server.Call(avahiServerIface+".GetVersionString", 0).Store(&versionStr); err == nil {
		return versionStr
	}

	// Try GetAPIVersion (returns a single uint32)
	var apiVersion uint32
	if err := server.Call(avahiServerIface+".GetAPIVersion", 0).Store(&apiVersion); err == nil {
		return fmt.Sprintf("API v%d", apiVersion)
	}

	return "unknown"
}

// Version returns the avahi-daemon version string.
func (a *AvahiRegistrar) Version() string {
	return a.version
}

func (a *AvahiRegistrar) HostNameFqdn(ctx context.Context) (string, error) {
	var fqdn string
	if err := a.server.CallWithContext(ctx, avahiServerIface+".GetHostNameFqdn", 0).Store(&fqdn); err != nil {
		return "", fmt.Errorf("failed to get host name fqdn: %w", err)
	}

	return fqdn, nil
}

func (a *AvahiRegistrar) EntryGroupNew(ctx context.Context) (EntryGroup, error) {
	var groupPath dbus.ObjectPath
	if err := a.server.CallWithContext(ctx, avahiServerIface+".EntryGroupNew", 0).Store(&groupPath); err != nil {
		return nil, fmt.Errorf("failed to create entry group: %w", err)
	}

	a.log.Tracef("created avahi entry group %s", groupPath)
	return &avahiEntryGroup{obj: a.conn.Object(avahiService, groupPath)}, nil
}

// Close disconnects from the system bus, avahi frees the entry groups
// owned by the connection.
func (a *AvahiRegistrar) Close() error {
	if a.conn == nil {
		return nil
	}

	err := a.conn.Close()
	a.conn = nil
	return err
}

type avahiEntryGroup struct {
	obj dbus.BusObject
}

func avahiInterface(loopback bool) (int32, error) {
	if !loopback {
		return avahiIfUnspec, nil
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return 0, fmt.Errorf("failed listing network interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 {
			return int32(iface.Index), nil
		}
	}

	return 0, fmt.Errorf("no loopback interface found")
}

func avahiProtocol(p Protocol) int32 {
	switch p {
	case ProtocolIPv6:
		return avahiProtoInet6
	case ProtocolAny:
		return avahiProtoUnspec
	default:
		return avahiProtoInet
	}
}

func (g *avahiEntryGroup) AddService(ctx context.Context, rec ServiceRecord) error {
	iface, err := avahiInterface(rec.Loopback)
	if err != nil {
		return err
	}

	// Convert TXT records to [][]byte format required by avahi
	txtBytes := make([][]byte, len(rec.Text))
	for i, t := range rec.Text {
		txtBytes[i] = []byte(t)
	}

	// AddService signature: iiussssqaay
	return g.obj.CallWithContext(ctx, avahiEntryGroupIface+".AddService", 0,
		iface,                       // interface
		avahiProtocol(rec.Protocol), // protocol
		uint32(0),                   // flags
		rec.Name,                    // service name
		rec.Type,                    // service type
		rec.Domain,                  // domain (empty = default)
		rec.Host,                    // host (empty = use default hostname)
		uint16(rec.Port),            // port
		txtBytes,                    // TXT records
	).Err
}

func (g *avahiEntryGroup) AddServiceSubtype(ctx context.Context, rec ServiceRecord, subtype string) error {
	iface, err := avahiInterface(rec.Loopback)
	if err != nil {
		return err
	}

	// AddServiceSubtype signature: iiusssss
	return g.obj.CallWithContext(ctx, avahiEntryGroupIface+".AddServiceSubtype", 0,
		iface,
		avahiProtocol(rec.Protocol),
		uint32(0),
		rec.Name,
		rec.Type,
		rec.Domain,
		subtype,
	).Err
}

func (g *avahiEntryGroup) Commit(ctx context.Context) error {
	return g.obj.CallWithContext(ctx, avahiEntryGroupIface+".Commit", 0).Err
}

func (g *avahiEntryGroup) Reset(ctx context.Context) error {
	return g.obj.CallWithContext(ctx, avahiEntryGroupIface+".Reset", 0).Err
}

func (g *avahiEntryGroup) Free(ctx context.Context) error {
	return g.obj.CallWithContext(ctx, avahiEntryGroupIface+".Free", 0).Err
}
