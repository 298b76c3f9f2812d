package wan

import (
	"strings"

	"grimm.is/wanwatch/internal/logging"
	"grimm.is/wanwatch/internal/network"
)

// Lister enumerates logical interfaces.
type Lister interface {
	List(exclude ...string) ([]string, error)
}

// Discovery finds the WAN interface. It never changes system state.
type Discovery struct {
	interfaces interface {
		Lister
		StatusQuerier
	}
	routes   network.RouteQuerier
	resolver *DeviceResolver
	loopback string
	logger   *logging.Logger
}

// NewDiscovery creates a Discovery. loopback is excluded from enumeration.
func NewDiscovery(interfaces network.InterfaceManager, routes network.RouteQuerier, loopback string, logger *logging.Logger) *Discovery {
	if logger == nil {
		logger = logging.WithComponent("discovery")
	}
	return &Discovery{
		interfaces: interfaces,
		routes:     routes,
		resolver:   NewDeviceResolver(interfaces, logger),
		loopback:   loopback,
		logger:     logger,
	}
}

// Resolve applies three tiers in order:
//
//  1. the first enumerated interface whose name contains "wan"
//     (case-insensitive) and is up;
//  2. the interface whose device carries the default route;
//  3. the default route device itself, as a physical-only identity.
//
// With no match and no default route it returns a *ResolutionError
// wrapping ErrNoWanFound.
func (d *Discovery) Resolve() (*Identity, error) {
	names, err := d.interfaces.List(d.loopback)
	if err != nil {
		d.logger.Warn("interface enumeration failed", "error", err)
		names = nil
	}
	d.logger.Debug("enumerated interfaces", "interfaces", strings.Join(names, ","))

	if id := d.byName(names); id != nil {
		d.logger.Info("WAN resolved by name", "interface", id.Name(), "device", id.Device())
		return id, nil
	}

	routeDev, err := d.routes.DefaultRouteDevice()
	if err != nil {
		d.logger.Warn("default route lookup failed", "error", err)
		routeDev = ""
	}
	if routeDev == "" {
		d.logger.Error("no WAN interface found", "interfaces", strings.Join(names, ","))
		return nil, &ResolutionError{Reason: ErrNoWanFound, Interfaces: names}
	}

	for _, name := range names {
		if d.resolver.PhysicalDeviceFor(name) == routeDev {
			d.logger.Info("WAN resolved by default route", "interface", name, "device", routeDev)
			return LogicalIdentity(name, routeDev), nil
		}
	}

	d.logger.Info("WAN resolved as unmanaged device", "device", routeDev)
	return PhysicalIdentity(routeDev), nil
}

func (d *Discovery) byName(names []string) *Identity {
	for _, name := range names {
		if !strings.Contains(strings.ToLower(name), "wan") {
			continue
		}
		st, err := d.interfaces.Status(name)
		if err != nil {
			d.logger.Debug("status query failed", "interface", name, "error", err)
			continue
		}
		if st.Up {
			return LogicalIdentity(name, st.Device)
		}
	}
	return nil
}
