// Package probe answers one question: does a target reply to ICMP echo,
// optionally with the requests forced out of a given device?
//
// Two implementations exist. ICMP sends echo requests itself through
// pro-bing; Command shells out to the system ping, which is the only option
// on hosts where the process holds neither CAP_NET_RAW nor a ping group.
//
// Neither returns an error: anything that prevents a reply (resolution
// failure, socket permission, unknown device) is a failed probe, with the
// cause carried in Result.Err for logging.
package probe

import (
	"fmt"
	"strings"
	"time"
)

// Target is one external host to probe.
type Target struct {
	Host string
}

func (t Target) String() string {
	return t.Host
}

// Targets converts host names to targets, dropping empty entries.
func Targets(hosts []string) []Target {
	out := make([]Target, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		out = append(out, Target{Host: h})
	}
	return out
}

// Config is applied identically to every target and every attempt.
type Config struct {
	// Count is the number of echo requests per check.
	Count int
	// Timeout bounds the wait for each individual reply.
	Timeout time.Duration
}

// Validate checks that Count and Timeout are positive.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("probe count must be positive, got %d", c.Count)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// Deadline is the bound on one whole check: Count replies of Timeout each.
func (c Config) Deadline() time.Duration {
	return time.Duration(c.Count) * c.Timeout
}

// Result is the outcome of one check against one target.
type Result struct {
	// OK is true iff at least one reply arrived.
	OK       bool
	Sent     int
	Received int
	// RTT is the average round trip of received replies, zero when none.
	RTT time.Duration
	// Err is the facility error that prevented the check, if any.
	Err error
}

func failed(err error) Result {
	return Result{Err: err}
}

// Prober checks reachability of a target. An empty device means the kernel
// picks the egress.
type Prober interface {
	Check(target Target, device string, cfg Config) Result
}

// Func adapts a function to the Prober interface.
type Func func(target Target, device string, cfg Config) Result

// Check calls f.
func (f Func) Check(target Target, device string, cfg Config) Result {
	return f(target, device, cfg)
}
