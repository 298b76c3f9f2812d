package network

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommandExecutor is the default RealCommandExecutor instance.
var DefaultCommandExecutor CommandExecutor = &RealCommandExecutor{}

// RealCommandExecutor is a concrete implementation of CommandExecutor using os/exec.
type RealCommandExecutor struct{}

// RunCommand runs a command and returns its standard output. Standard error
// only appears in the returned error.
func (r *RealCommandExecutor) RunCommand(name string, arg ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, arg...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("command %s %s failed: %w, output: %s", name, strings.Join(arg, " "), err, output)
	}
	return stdout.String(), nil
}
