package network

import (
	"encoding/json"
	"fmt"
	"strings"
)

const netifdObjectPrefix = "network.interface."

// Netifd talks to OpenWrt's netifd over the ubus CLI. Logical interfaces
// are the names in /etc/config/network ("wan", "wan6", "lan").
type Netifd struct {
	query   CommandExecutor
	control CommandExecutor
}

// NewNetifd creates the netifd backend. Read-only queries run through query,
// ifup/ifdown through control.
func NewNetifd(query, control CommandExecutor) *Netifd {
	return &Netifd{query: query, control: control}
}

// ifstatusReply is the subset of "ubus call network.interface.<name> status" we use.
type ifstatusReply struct {
	Up       bool   `json:"up"`
	L3Device string `json:"l3_device"`
	Device   string `json:"device"`
}

// List returns interface names in the order ubus prints them.
func (n *Netifd) List(exclude ...string) ([]string, error) {
	out, err := n.query.RunCommand("ubus", "list", netifdObjectPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list netifd interfaces: %w", err)
	}
	var names []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, netifdObjectPrefix) {
			continue
		}
		name := strings.TrimPrefix(line, netifdObjectPrefix)
		if name == "" || contains(exclude, name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Status queries netifd for one interface. The layer 3 device (e.g. pppoe-wan)
// is preferred over the underlying device since it carries the routes.
func (n *Netifd) Status(name string) (InterfaceStatus, error) {
	out, err := n.query.RunCommand("ubus", "call", netifdObjectPrefix+name, "status")
	if err != nil {
		return InterfaceStatus{}, fmt.Errorf("netifd status %s: %w", name, err)
	}
	// Anything printed around the object (warnings, banners) is ignored.
	if i := strings.IndexByte(out, '{'); i > 0 {
		out = out[i:]
	}
	var reply ifstatusReply
	if err := json.NewDecoder(strings.NewReader(out)).Decode(&reply); err != nil {
		return InterfaceStatus{}, fmt.Errorf("netifd status %s: invalid reply: %w", name, err)
	}
	device := reply.L3Device
	if device == "" {
		device = reply.Device
	}
	return InterfaceStatus{Up: reply.Up, Device: device}, nil
}

// Down runs ifdown for the interface.
func (n *Netifd) Down(name string) error {
	if _, err := n.control.RunCommand("ifdown", name); err != nil {
		return fmt.Errorf("ifdown %s: %w", name, err)
	}
	return nil
}

// Up runs ifup for the interface.
func (n *Netifd) Up(name string) error {
	if _, err := n.control.RunCommand("ifup", name); err != nil {
		return fmt.Errorf("ifup %s: %w", name, err)
	}
	return nil
}
