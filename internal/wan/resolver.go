package wan

import (
	"grimm.is/wanwatch/internal/logging"
	"grimm.is/wanwatch/internal/network"
)

// StatusQuerier is the part of the management layer the resolver needs.
type StatusQuerier interface {
	Status(name string) (network.InterfaceStatus, error)
}

// DeviceResolver maps a logical interface to its current physical device.
type DeviceResolver struct {
	status StatusQuerier
	logger *logging.Logger
}

// NewDeviceResolver creates a resolver over status.
func NewDeviceResolver(status StatusQuerier, logger *logging.Logger) *DeviceResolver {
	if logger == nil {
		logger = logging.WithComponent("resolver")
	}
	return &DeviceResolver{status: status, logger: logger}
}

// PhysicalDeviceFor returns the device bound to logical, or "" when the
// lookup fails or the interface is unbound. A miss is not an error: probes
// then go out without a forced egress.
func (r *DeviceResolver) PhysicalDeviceFor(logical string) string {
	st, err := r.status.Status(logical)
	if err != nil {
		r.logger.Debug("device lookup failed", "interface", logical, "error", err)
		return ""
	}
	return st.Device
}
