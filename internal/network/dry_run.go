package network

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vishvananda/netlink"
)

// DryRunExecutor implements CommandExecutor but only records commands.
type DryRunExecutor struct {
	mu       sync.Mutex
	Commands []string
}

// NewDryRunExecutor creates a new dry run executor.
func NewDryRunExecutor() *DryRunExecutor {
	return &DryRunExecutor{
		Commands: make([]string, 0),
	}
}

// RunCommand records the command instead of executing it.
func (e *DryRunExecutor) RunCommand(name string, arg ...string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, strings.TrimSpace(name+" "+strings.Join(arg, " ")))
	return "", nil
}

// Recorded returns a copy of the recorded commands.
func (e *DryRunExecutor) Recorded() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.Commands...)
}

// Drain returns the recorded commands and clears them.
func (e *DryRunExecutor) Drain() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	cmds := e.Commands
	e.Commands = make([]string, 0)
	return cmds
}

// DryRunNetlinker records link state changes as "ip" commands.
// Lookups return placeholder links so control paths can be exercised without a kernel.
type DryRunNetlinker struct {
	mu  sync.Mutex
	Ops []string
}

func (n *DryRunNetlinker) log(op string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Ops = append(n.Ops, fmt.Sprintf("ip %s", op))
}

// Recorded returns a copy of the recorded operations.
func (n *DryRunNetlinker) Recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Ops...)
}

// Drain returns the recorded operations and clears them.
func (n *DryRunNetlinker) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ops := n.Ops
	n.Ops = nil
	return ops
}

func (n *DryRunNetlinker) LinkByName(name string) (netlink.Link, error) {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Name: name}}, nil
}
func (n *DryRunNetlinker) LinkByIndex(index int) (netlink.Link, error) {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: index, Name: fmt.Sprintf("if%d", index)}}, nil
}
func (n *DryRunNetlinker) LinkList() ([]netlink.Link, error) { return nil, nil }
func (n *DryRunNetlinker) LinkSetUp(link netlink.Link) error {
	n.log(fmt.Sprintf("link set %s up", link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) LinkSetDown(link netlink.Link) error {
	n.log(fmt.Sprintf("link set %s down", link.Attrs().Name))
	return nil
}
func (n *DryRunNetlinker) RouteList(link netlink.Link, family int) ([]netlink.Route, error) {
	return nil, nil
}
