package probe

import (
	"fmt"

	probing "github.com/prometheus-community/pro-bing"

	"grimm.is/wanwatch/internal/logging"
)

// ICMP sends echo requests with pro-bing.
type ICMP struct {
	// Privileged selects raw ICMP sockets. Unprivileged mode uses UDP ping
	// sockets, which require net.ipv4.ping_group_range to include our gid.
	Privileged bool

	logger *logging.Logger
	// run executes a configured pinger; replaced in tests.
	run func(p *probing.Pinger) error
}

// NewICMP creates an ICMP prober.
func NewICMP(privileged bool, logger *logging.Logger) *ICMP {
	if logger == nil {
		logger = logging.WithComponent("probe")
	}
	return &ICMP{
		Privileged: privileged,
		logger:     logger,
		run:        func(p *probing.Pinger) error { return p.Run() },
	}
}

// Check sends cfg.Count echo requests to target and waits up to
// cfg.Count*cfg.Timeout for replies.
func (i *ICMP) Check(target Target, device string, cfg Config) Result {
	if err := cfg.Validate(); err != nil {
		return failed(err)
	}

	pinger, err := probing.NewPinger(target.Host)
	if err != nil {
		return failed(fmt.Errorf("failed to create pinger: %w", err))
	}

	pinger.Count = cfg.Count
	pinger.Timeout = cfg.Deadline()
	if cfg.Timeout < pinger.Interval {
		pinger.Interval = cfg.Timeout
	}
	pinger.InterfaceName = device
	pinger.SetPrivileged(i.Privileged)
	pinger.SetLogger(pingLogger{i.logger})

	if err := i.run(pinger); err != nil {
		return failed(err)
	}

	stats := pinger.Statistics()
	res := Result{
		OK:       stats.PacketsRecv > 0,
		Sent:     stats.PacketsSent,
		Received: stats.PacketsRecv,
		RTT:      stats.AvgRtt,
	}
	if !res.OK {
		res.Err = fmt.Errorf("packet loss")
	}
	return res
}

// pingLogger routes pro-bing's internal messages into our logger.
type pingLogger struct {
	l *logging.Logger
}

func (p pingLogger) Fatalf(format string, v ...interface{}) {
	p.l.Error(fmt.Sprintf(format, v...))
}

func (p pingLogger) Errorf(format string, v ...interface{}) {
	p.l.Error(fmt.Sprintf(format, v...))
}

func (p pingLogger) Warnf(format string, v ...interface{}) {
	p.l.Warn(fmt.Sprintf(format, v...))
}

func (p pingLogger) Infof(format string, v ...interface{}) {
	p.l.Debug(fmt.Sprintf(format, v...))
}

func (p pingLogger) Debugf(format string, v ...interface{}) {
	p.l.Debug(fmt.Sprintf(format, v...))
}
