package network

import (
	"fmt"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// RouteTable answers default-route queries from the kernel's main IPv4 table.
type RouteTable struct {
	nl Netlinker
}

// NewRouteTable creates a RouteTable backed by nl.
func NewRouteTable(nl Netlinker) *RouteTable {
	return &RouteTable{nl: nl}
}

// DefaultRouteDevice returns the device of the preferred (lowest metric)
// IPv4 default route, or "" when no default route exists.
func (r *RouteTable) DefaultRouteDevice() (string, error) {
	routes, err := r.nl.RouteList(nil, unix.AF_INET)
	if err != nil {
		return "", fmt.Errorf("failed to list routes: %w", err)
	}

	var best *netlink.Route
	bestIndex := 0
	for i := range routes {
		rt := &routes[i]
		if !isDefaultRoute(rt) {
			continue
		}
		idx := routeLinkIndex(rt)
		if idx == 0 {
			continue
		}
		if best == nil || rt.Priority < best.Priority {
			best = rt
			bestIndex = idx
		}
	}
	if best == nil {
		return "", nil
	}

	link, err := r.nl.LinkByIndex(bestIndex)
	if err != nil {
		return "", fmt.Errorf("default route device index %d: %w", bestIndex, err)
	}
	return link.Attrs().Name, nil
}

// isDefaultRoute accepts both encodings netlink uses for the default
// destination: nil, or an explicit 0.0.0.0/0.
func isDefaultRoute(rt *netlink.Route) bool {
	if rt.Dst == nil {
		return true
	}
	ones, _ := rt.Dst.Mask.Size()
	return ones == 0 && rt.Dst.IP.IsUnspecified()
}

// routeLinkIndex returns the outgoing interface, taking the first nexthop of
// a multipath route.
func routeLinkIndex(rt *netlink.Route) int {
	if rt.LinkIndex != 0 {
		return rt.LinkIndex
	}
	for _, nh := range rt.MultiPath {
		if nh != nil && nh.LinkIndex != 0 {
			return nh.LinkIndex
		}
	}
	return 0
}
