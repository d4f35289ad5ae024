package timeshard

import (
	"errors"
	"fmt"
	"net"
)

// NodeIDFromIP derives a node id from an IPv4 address: the last two
// octets combined as (high << 8) | low, masked to the layout's node id
// width. In pod-per-IP environments this yields distinct ids as long as
// addresses differ in their low bits; it is a convenience, not a
// uniqueness guarantee.
func NodeIDFromIP(ip net.IP, layout Layout) (int64, error) {
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("timeshard: node id derivation needs an IPv4 address, got %s", ip)
	}
	return (int64(ip4[2])<<8 | int64(ip4[3])) & layout.MaxNodeID(), nil
}

// DeriveNodeID derives a node id from the host's first non-loopback IPv4
// interface address via NodeIDFromIP. When no such address exists it
// returns 0 with an error; callers may log the error and run with node
// id 0, or configure an explicit id instead.
func DeriveNodeID(layout Layout) (int64, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return 0, fmt.Errorf("timeshard: listing interface addresses: %w", err)
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		if ipNet.IP.IsLoopback() || ipNet.IP.To4() == nil {
			continue
		}
		return NodeIDFromIP(ipNet.IP, layout)
	}

	return 0, errors.New("timeshard: no non-loopback IPv4 address found")
}
