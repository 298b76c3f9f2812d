package network

import (
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// KernelInterfaces treats every kernel link as a logical interface bound to
// itself. It is the backend for hosts without a management daemon.
type KernelInterfaces struct {
	nl    Netlinker
	links LinkController
}

// NewKernelInterfaces creates the kernel backend. Lookups go through nl,
// state changes through links.
func NewKernelInterfaces(nl Netlinker, links LinkController) *KernelInterfaces {
	return &KernelInterfaces{nl: nl, links: links}
}

// List returns link names in kernel index order.
func (k *KernelInterfaces) List(exclude ...string) ([]string, error) {
	links, err := k.nl.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	names := make([]string, 0, len(links))
	for _, l := range links {
		attrs := l.Attrs()
		if attrs == nil || attrs.Name == "" || contains(exclude, attrs.Name) {
			continue
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

// Status reports a link as up when it is administratively up and its
// operational state is up or unknown (ppp and tun devices report unknown).
func (k *KernelInterfaces) Status(name string) (InterfaceStatus, error) {
	link, err := k.nl.LinkByName(name)
	if err != nil {
		return InterfaceStatus{}, fmt.Errorf("link %s: %w", name, err)
	}
	attrs := link.Attrs()
	adminUp := attrs.Flags&net.FlagUp != 0
	operUp := attrs.OperState == netlink.OperUp || attrs.OperState == netlink.OperUnknown
	return InterfaceStatus{
		Up:     adminUp && operUp,
		Device: attrs.Name,
	}, nil
}

// Down brings the link down.
func (k *KernelInterfaces) Down(name string) error {
	return k.links.SetLinkDown(name)
}

// Up brings the link up.
func (k *KernelInterfaces) Up(name string) error {
	return k.links.SetLinkUp(name)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
