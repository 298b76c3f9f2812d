package wan

import "fmt"

// Kind records how an identity was resolved, which decides how it is cycled.
type Kind int

const (
	// KindLogical is a name known to the interface management layer.
	// It is cycled with a logical down/up.
	KindLogical Kind = iota
	// KindPhysicalOnly is a raw kernel device with no logical mapping.
	// It is cycled with a physical link down/up.
	KindPhysicalOnly
)

func (k Kind) String() string {
	switch k {
	case KindLogical:
		return "logical"
	case KindPhysicalOnly:
		return "physical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Identity is the resolved WAN interface for one run.
// Name and Kind are fixed at resolution; Device follows the latest lookup.
type Identity struct {
	name   string
	device string
	kind   Kind
}

// LogicalIdentity creates an identity for a managed interface. device may be
// empty when the interface is not bound to a device.
func LogicalIdentity(name, device string) *Identity {
	return &Identity{name: name, device: device, kind: KindLogical}
}

// PhysicalIdentity creates an identity for an unmanaged device.
func PhysicalIdentity(device string) *Identity {
	return &Identity{name: device, device: device, kind: KindPhysicalOnly}
}

// Name is the identifier the interface was resolved as.
func (id *Identity) Name() string { return id.name }

// Device is the most recently resolved physical device, or "".
func (id *Identity) Device() string { return id.device }

// Kind reports how the identity was resolved.
func (id *Identity) Kind() Kind { return id.kind }

func (id *Identity) setDevice(device string) {
	id.device = device
}

func (id *Identity) String() string {
	if id.device == "" || id.device == id.name {
		return fmt.Sprintf("%s (%s)", id.name, id.kind)
	}
	return fmt.Sprintf("%s (%s, device %s)", id.name, id.kind, id.device)
}
