//go:build test_unit

package zeroconf

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtinDemoRecord() ServiceRecord {
	return ServiceRecord{
		Name:     "MK Demo on myhost",
		Type:     ServiceType,
		Subtype:  Subtype("demo"),
		Port:     5000,
		Text:     BuildTXT("tcp://host:1234", "abc-123", "inst", "demo"),
		Loopback: true,
	}
}

func newBuiltinGroup(t *testing.T) (*BuiltinRegistrar, *builtinEntryGroup) {
	b := NewBuiltinRegistrar(&machinetalk.NullLogger{}, nil)
	t.Cleanup(func() { _ = b.Close() })

	g, err := b.EntryGroupNew(context.Background())
	require.NoError(t, err)
	return b, g.(*builtinEntryGroup)
}

func TestBuiltinHostNameFqdn(t *testing.T) {
	b := NewBuiltinRegistrar(&machinetalk.NullLogger{}, nil)

	fqdn, err := b.HostNameFqdn(context.Background())
	require.NoError(t, err)

	label, domain, ok := strings.Cut(fqdn, ".")
	assert.True(t, ok)
	assert.NotEmpty(t, label)
	assert.Equal(t, "local", domain)
}

func TestBuiltinCommitEmpty(t *testing.T) {
	_, g := newBuiltinGroup(t)
	assert.ErrorContains(t, g.Commit(context.Background()), "entry group is empty")
}

func TestBuiltinAddServiceTwice(t *testing.T) {
	_, g := newBuiltinGroup(t)
	ctx := context.Background()

	require.NoError(t, g.AddService(ctx, builtinDemoRecord()))
	assert.ErrorContains(t, g.AddService(ctx, builtinDemoRecord()), "already contains service")
}

func TestBuiltinAddServiceSubtype(t *testing.T) {
	_, g := newBuiltinGroup(t)
	ctx := context.Background()
	rec := builtinDemoRecord()

	// nothing added yet
	assert.Error(t, g.AddServiceSubtype(ctx, rec, rec.Subtype))

	require.NoError(t, g.AddService(ctx, rec))

	other := rec
	other.Name = "MK Other on myhost"
	assert.ErrorContains(t, g.AddServiceSubtype(ctx, other, rec.Subtype), "no service")

	require.NoError(t, g.AddServiceSubtype(ctx, rec, rec.Subtype))
	assert.Equal(t, []string{"_demo"}, g.subtypes)
}

func TestBuiltinResetClearsGroup(t *testing.T) {
	_, g := newBuiltinGroup(t)
	ctx := context.Background()
	rec := builtinDemoRecord()

	require.NoError(t, g.AddService(ctx, rec))
	require.NoError(t, g.AddServiceSubtype(ctx, rec, rec.Subtype))
	require.NoError(t, g.Reset(ctx))

	assert.Nil(t, g.rec)
	assert.Nil(t, g.subtypes)
	assert.Nil(t, g.server)

	// the group can be filled again
	require.NoError(t, g.AddService(ctx, rec))
}

func TestBuiltinGroupsNotRetained(t *testing.T) {
	b := NewBuiltinRegistrar(&machinetalk.NullLogger{}, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		g, err := b.EntryGroupNew(ctx)
		require.NoError(t, err)
		require.NoError(t, g.AddService(ctx, builtinDemoRecord()))
		require.NoError(t, g.Reset(ctx))
		require.NoError(t, g.Free(ctx))
	}

	assert.Empty(t, b.groups)
	assert.NoError(t, b.Close())
}

func TestBuiltinInterfaces(t *testing.T) {
	b := NewBuiltinRegistrar(&machinetalk.NullLogger{}, nil)

	all, err := b.interfaces(false)
	require.NoError(t, err)
	assert.Nil(t, all)

	loopbacks, err := b.interfaces(true)
	if err != nil {
		t.Skipf("no loopback interface: %v", err)
	}

	require.NotEmpty(t, loopbacks)
	for _, iface := range loopbacks {
		assert.NotZero(t, iface.Flags&net.FlagLoopback, "%s is not a loopback interface", iface.Name)
	}
}

func TestBuiltinLoopbackRoundTrip(t *testing.T) {
	b, g := newBuiltinGroup(t)
	ctx := context.Background()
	rec := builtinDemoRecord()

	require.NoError(t, g.AddService(ctx, rec))
	require.NoError(t, g.AddServiceSubtype(ctx, rec, rec.Subtype))
	if err := g.Commit(ctx); err != nil {
		t.Skipf("cannot run a responder on loopback: %v", err)
	}

	assert.Len(t, b.groups, 1)
	assert.ErrorContains(t, g.Commit(ctx), "already committed")

	loopbacks, err := b.interfaces(true)
	require.NoError(t, err)

	resolver, err := zeroconf.NewResolver(zeroconf.SelectIfaces(loopbacks))
	require.NoError(t, err)

	browseCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	require.NoError(t, resolver.Browse(browseCtx, ServiceType, "local.", entries))

	var found *zeroconf.ServiceEntry
	for found == nil {
		select {
		case <-browseCtx.Done():
			t.Skip("no multicast delivery on loopback")
		case entry := <-entries:
			if entry != nil && entry.Instance == rec.Name {
				found = entry
			}
		}
	}

	assert.Equal(t, 5000, found.Port)
	assert.Equal(t, rec.Text, found.Text)

	var info ServiceInfo
	require.NoError(t, ParseTXT(found.Text, &info))
	assert.Equal(t, "demo", info.Service)

	require.NoError(t, g.Reset(ctx))
	assert.Nil(t, g.server)
	assert.Empty(t, b.groups)
}
