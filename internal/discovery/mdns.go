package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/enbility/zeroconf/v3"

	"github.com/oshokin/walk-buddy/internal/logger"
)

const (
	// ServiceType is the DNS-SD service type of the relay.
	ServiceType = "_walkbuddy-relay._tcp"
	// Domain is the mDNS domain.
	Domain = "local."

	// entryBuffer keeps the browser from blocking while Lookup returns.
	entryBuffer = 8
)

// ErrNotFound is returned when no relay answered before the context expired.
var ErrNotFound = errors.New("no relay found on the local network")

// Advertiser publishes the relay service until shut down.
type Advertiser struct {
	// server is the zeroconf responder.
	server *zeroconf.Server
}

// Advertise registers the relay on every interface.
func Advertise(ctx context.Context, instance string, port int) (*Advertiser, error) {
	server, err := zeroconf.Register(instance, ServiceType, Domain, port, []string{"txtv=1"}, nil)
	if err != nil {
		return nil, fmt.Errorf("register relay service: %w", err)
	}

	logger.InfoKV(ctx, "Relay advertised", "instance", instance, "service", ServiceType, "port", port)

	return &Advertiser{
		server: server,
	}, nil
}

// Shutdown stops advertising.
func (a *Advertiser) Shutdown() {
	if a == nil || a.server == nil {
		return
	}

	a.server.Shutdown()
	a.server = nil
}

// Lookup browses for a relay until one answers or ctx expires, and returns
// its "host:port" address.
func Lookup(ctx context.Context) (string, error) {
	browseCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry, entryBuffer)
	removed := make(chan *zeroconf.ServiceEntry, entryBuffer)
	browseErr := make(chan error, 1)

	go func() {
		browseErr <- zeroconf.Browse(browseCtx, ServiceType, Domain, entries, removed)
	}()

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return "", ErrNotFound
			}

			if address, found := relayAddress(entry.Port, entry.AddrIPv4, entry.AddrIPv6); found {
				logger.DebugKV(ctx, "Relay discovered", "instance", entry.Instance, "address", address)

				return address, nil
			}

		case _, ok := <-removed:
			if !ok {
				removed = nil
			}

		case err := <-browseErr:
			if err != nil {
				return "", fmt.Errorf("browse relays: %w", err)
			}

			// Some browsers return immediately and keep delivering entries.
			browseErr = nil

		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrNotFound, ctx.Err())
		}
	}
}

// relayAddress picks a dialable address, preferring IPv4.
func relayAddress(port int, ipv4, ipv6 []net.IP) (string, bool) {
	if port <= 0 {
		return "", false
	}

	for _, ips := range [][]net.IP{ipv4, ipv6} {
		for _, ip := range ips {
			if ip == nil || ip.IsUnspecified() {
				continue
			}

			return net.JoinHostPort(ip.String(), strconv.Itoa(port)), true
		}
	}

	return "", false
}
