package network

import (
	"github.com/vishvananda/netlink"
)

// Netlinker is an interface that abstracts netlink interactions.
// This allows for mocking netlink calls during unit testing.
type Netlinker interface {
	LinkByName(name string) (netlink.Link, error)
	LinkByIndex(index int) (netlink.Link, error)
	LinkList() ([]netlink.Link, error)
	LinkSetUp(link netlink.Link) error
	LinkSetDown(link netlink.Link) error

	RouteList(link netlink.Link, family int) ([]netlink.Route, error)
}

// CommandExecutor is an interface that abstracts executing shell commands.
type CommandExecutor interface {
	RunCommand(name string, arg ...string) (string, error)
}

// InterfaceStatus is what the management layer reports for one logical interface.
type InterfaceStatus struct {
	Up bool
	// Device is the physical (layer 3) device bound to the interface; empty when unbound.
	Device string
}

// InterfaceManager is the network-management layer's view of logical interfaces.
type InterfaceManager interface {
	// List returns logical interface names in the order the layer reports them.
	List(exclude ...string) ([]string, error)
	Status(name string) (InterfaceStatus, error)
	Down(name string) error
	Up(name string) error
}

// RouteQuerier reports which device carries the default route.
type RouteQuerier interface {
	// DefaultRouteDevice returns "" with a nil error when there is no default route.
	DefaultRouteDevice() (string, error)
}

// LinkController toggles the link state of a physical device.
type LinkController interface {
	SetLinkDown(device string) error
	SetLinkUp(device string) error
}
