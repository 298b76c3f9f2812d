// Package network provides the capability layer the watchdog uses to see and
// control the host's interfaces.
//
// # Backends
//
//   - netifd: OpenWrt. Logical interfaces ("wan", "wan6") come from ubus,
//     their status from "ubus call network.interface.<name> status", and
//     they are cycled with ifdown/ifup.
//   - kernel: plain Linux. Every kernel link is its own logical interface.
//
// Both backends read the default route from the kernel routing table and
// toggle physical devices with netlink.
//
// # Seams
//
// [Netlinker] and [CommandExecutor] abstract every system call so tests can
// substitute [MockNetlinker]/[MockCommandExecutor], and dry runs can record
// state changes through [DryRunNetlinker]/[DryRunExecutor].
//
// # Dependencies
//
// Uses github.com/vishvananda/netlink for all netlink operations.
package network
