package zeroconf

import (
	"context"
	"fmt"

	"github.com/grandcat/zeroconf"
	machinetalk "github.com/machinekit/go-machinetalk"
)

// Resolver is the browsing side of grandcat/zeroconf, as an interface so
// that it can be replaced in tests.
type Resolver interface {
	Browse(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error
}

// Browser finds machinekit services on the local network.
type Browser struct {
	log      machinetalk.Logger
	resolver Resolver
}

func NewBrowser(log machinetalk.Logger) (*Browser, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed initializing zeroconf resolver: %w", err)
	}

	return &Browser{log: log, resolver: resolver}, nil
}

func NewBrowserWithResolver(log machinetalk.Logger, resolver Resolver) *Browser {
	return &Browser{log: log, resolver: resolver}
}

// Browse reports every machinekit service found until ctx is done. If
// serviceType is not empty only services of that type are reported.
// Entries without the machinekit text records are skipped.
func (b *Browser) Browse(ctx context.Context, serviceType string, found func(ServiceInfo)) error {
	entries := make(chan *zeroconf.ServiceEntry)
	if err := b.resolver.Browse(ctx, ServiceType, "local.", entries); err != nil {
		return fmt.Errorf("failed browsing %s: %w", ServiceType, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case entry, ok := <-entries:
			if !ok {
				return nil
			}

			info, err := serviceInfoFromEntry(entry)
			if err != nil {
				b.log.WithError(err).Debugf("ignoring service %s", entry.Instance)
				continue
			}

			if len(serviceType) > 0 && info.Service != serviceType {
				continue
			}

			found(info)
		}
	}
}

func serviceInfoFromEntry(entry *zeroconf.ServiceEntry) (ServiceInfo, error) {
	info := ServiceInfo{
		Instance: entry.Instance,
		HostName: entry.HostName,
		Port:     entry.Port,
	}

	for _, ip := range entry.AddrIPv4 {
		info.Addrs = append(info.Addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		info.Addrs = append(info.Addrs, ip.String())
	}

	if err := ParseTXT(entry.Text, &info); err != nil {
		return ServiceInfo{}, err
	}

	return info, nil
}
