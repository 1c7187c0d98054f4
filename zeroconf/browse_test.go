//go:build test_unit

package zeroconf

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
	machinetalk "github.com/machinekit/go-machinetalk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEntry(instance string, port int, txt ...string) *zeroconf.ServiceEntry {
	entry := zeroconf.NewServiceEntry(instance, ServiceType, "local.")
	entry.HostName = "machine.local."
	entry.Port = port
	entry.Text = txt
	entry.AddrIPv4 = []net.IP{net.IPv4(192, 168, 1, 10)}
	return entry
}

func TestBrowse(t *testing.T) {
	resolver := NewMockResolver(t)
	resolver.EXPECT().Browse(mock.Anything, ServiceType, "local.", mock.Anything).
		RunAndReturn(func(_ context.Context, _, _ string, entries chan<- *zeroconf.ServiceEntry) error {
			go func() {
				entries <- newEntry("MK Demo on machine", 5000, BuildTXT("tcp://machine:5000", "abc", "i1", "demo")...)
				entries <- newEntry("printer", 631, "rp=ipp")
				entries <- newEntry("MK Config on machine", 5001, BuildTXT("tcp://machine:5001", "abc", "i1", "config")...)
				close(entries)
			}()
			return nil
		}).Once()

	var found []ServiceInfo
	b := NewBrowserWithResolver(&machinetalk.NullLogger{}, resolver)
	require.NoError(t, b.Browse(context.Background(), "", func(info ServiceInfo) {
		found = append(found, info)
	}))

	require.Len(t, found, 2)
	assert.Equal(t, "MK Demo on machine", found[0].Instance)
	assert.Equal(t, 5000, found[0].Port)
	assert.Equal(t, "tcp://machine:5000", found[0].DSN)
	assert.Equal(t, []string{"192.168.1.10"}, found[0].Addrs)
	assert.Equal(t, "config", found[1].Service)
}

func TestBrowseFilter(t *testing.T) {
	resolver := NewMockResolver(t)
	resolver.EXPECT().Browse(mock.Anything, ServiceType, "local.", mock.Anything).
		RunAndReturn(func(_ context.Context, _, _ string, entries chan<- *zeroconf.ServiceEntry) error {
			go func() {
				entries <- newEntry("MK Demo on machine", 5000, BuildTXT("tcp://machine:5000", "abc", "i1", "demo")...)
				entries <- newEntry("MK Config on machine", 5001, BuildTXT("tcp://machine:5001", "abc", "i1", "config")...)
				close(entries)
			}()
			return nil
		}).Once()

	var found []string
	b := NewBrowserWithResolver(&machinetalk.NullLogger{}, resolver)
	require.NoError(t, b.Browse(context.Background(), "config", func(info ServiceInfo) {
		found = append(found, info.Instance)
	}))

	assert.Equal(t, []string{"MK Config on machine"}, found)
}

func TestBrowseError(t *testing.T) {
	resolver := NewMockResolver(t)
	resolver.EXPECT().Browse(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no multicast")).Once()

	b := NewBrowserWithResolver(&machinetalk.NullLogger{}, resolver)
	err := b.Browse(context.Background(), "", func(ServiceInfo) { t.Fatal("unexpected service") })
	assert.ErrorContains(t, err, "no multicast")
}
