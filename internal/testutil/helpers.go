package testutil

import (
	"os"
	"testing"
)

// RequireVM skips the test if the WANWATCH_VM_TEST environment variable is not set.
// This ensures that tests requiring real kernel capabilities (netlink link control, raw ICMP sockets)
// are only run in the proper environment.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv("WANWATCH_VM_TEST") == "" {
		t.Skip("Skipping test: requires WANWATCH_VM_TEST environment")
	}
}
