package network

import (
	"fmt"
)

// LinkControl sets physical device link state through netlink.
type LinkControl struct {
	nl Netlinker
}

// NewLinkControl creates a LinkControl backed by nl.
func NewLinkControl(nl Netlinker) *LinkControl {
	return &LinkControl{nl: nl}
}

// SetLinkDown brings device down.
func (c *LinkControl) SetLinkDown(device string) error {
	link, err := c.nl.LinkByName(device)
	if err != nil {
		return fmt.Errorf("device %s not found: %w", device, err)
	}
	if err := c.nl.LinkSetDown(link); err != nil {
		return fmt.Errorf("failed to bring down %s: %w", device, err)
	}
	return nil
}

// SetLinkUp brings device up.
func (c *LinkControl) SetLinkUp(device string) error {
	link, err := c.nl.LinkByName(device)
	if err != nil {
		return fmt.Errorf("device %s not found: %w", device, err)
	}
	if err := c.nl.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to bring up %s: %w", device, err)
	}
	return nil
}
