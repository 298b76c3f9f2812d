package probe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"grimm.is/wanwatch/internal/network"
)

// Command probes with the system ping binary (iputils or busybox).
type Command struct {
	exec network.CommandExecutor
}

// NewCommand creates a Command prober. A nil executor uses the real one.
func NewCommand(exec network.CommandExecutor) *Command {
	if exec == nil {
		exec = network.DefaultCommandExecutor
	}
	return &Command{exec: exec}
}

var (
	// "3 packets transmitted, 1 packets received" (busybox)
	// "3 packets transmitted, 1 received" (iputils)
	pingSummary = regexp.MustCompile(`(\d+) packets transmitted, (\d+) (?:packets )?received`)
	// "round-trip min/avg/max = 9.1/10.2/11.3 ms" or "rtt min/avg/max/mdev = ..."
	pingRTT = regexp.MustCompile(`min/avg/max(?:/mdev)? = [\d.]+/([\d.]+)/`)
)

// Check runs "ping -c N -W T [-I device] host". ping exits non-zero when no
// reply arrived, which the executor reports as an error.
func (c *Command) Check(target Target, device string, cfg Config) Result {
	if err := cfg.Validate(); err != nil {
		return failed(err)
	}

	args := pingArgs(target, device, cfg)
	out, err := c.exec.RunCommand("ping", args...)
	if err != nil {
		return failed(err)
	}

	res := parsePingOutput(out)
	if !res.OK {
		res.Err = fmt.Errorf("packet loss")
	}
	return res
}

func pingArgs(target Target, device string, cfg Config) []string {
	// -W takes whole seconds; round up so sub-second timeouts still wait.
	secs := int(math.Ceil(cfg.Timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	args := []string{"-c", strconv.Itoa(cfg.Count), "-W", strconv.Itoa(secs)}
	if device != "" {
		args = append(args, "-I", device)
	}
	return append(args, target.Host)
}

// parsePingOutput extracts the summary. Output without a summary line but
// with a zero exit status counts as reachable with unknown packet counts.
func parsePingOutput(out string) Result {
	m := pingSummary.FindStringSubmatch(out)
	if m == nil {
		return Result{OK: true}
	}
	sent, _ := strconv.Atoi(m[1])
	recv, _ := strconv.Atoi(m[2])
	res := Result{OK: recv > 0, Sent: sent, Received: recv}

	if rm := pingRTT.FindStringSubmatch(out); rm != nil {
		if ms, err := strconv.ParseFloat(rm[1], 64); err == nil {
			res.RTT = time.Duration(ms * float64(time.Millisecond))
		}
	}
	return res
}
