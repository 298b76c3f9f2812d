package wan

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"grimm.is/wanwatch/internal/network"
	"grimm.is/wanwatch/internal/probe"
)

// fakeInterfaces is a scripted management layer.
type fakeInterfaces struct {
	mu       sync.Mutex
	names    []string
	status   map[string]network.InterfaceStatus
	listErr  error
	downErr  error
	upErr    error
	calls    []string
	onUp     func(name string)
	statusQs map[string]int
	now      func() time.Time
	stamps   map[string]time.Time
}

func newFakeInterfaces(names ...string) *fakeInterfaces {
	return &fakeInterfaces{
		names:    names,
		status:   make(map[string]network.InterfaceStatus),
		statusQs: make(map[string]int),
		stamps:   make(map[string]time.Time),
	}
}

func (f *fakeInterfaces) set(name string, up bool, device string) *fakeInterfaces {
	f.status[name] = network.InterfaceStatus{Up: up, Device: device}
	return f
}

func (f *fakeInterfaces) List(exclude ...string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []string
	for _, n := range f.names {
		skip := false
		for _, e := range exclude {
			if n == e {
				skip = true
			}
		}
		if !skip {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeInterfaces) Status(name string) (network.InterfaceStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusQs[name]++
	st, ok := f.status[name]
	if !ok {
		return network.InterfaceStatus{}, fmt.Errorf("interface %s not found", name)
	}
	return st, nil
}

func (f *fakeInterfaces) Down(name string) error {
	f.record("down " + name)
	return f.downErr
}

func (f *fakeInterfaces) Up(name string) error {
	f.record("up " + name)
	if f.onUp != nil {
		f.onUp(name)
	}
	return f.upErr
}

func (f *fakeInterfaces) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.now != nil {
		f.stamps[call] = f.now()
	}
}

func (f *fakeInterfaces) statusQueries(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusQs[name]
}

// fakeRoutes reports a fixed default route device.
type fakeRoutes struct {
	device  string
	err     error
	queries int
}

func (f *fakeRoutes) DefaultRouteDevice() (string, error) {
	f.queries++
	return f.device, f.err
}

// fakeLinks records physical link control.
type fakeLinks struct {
	calls   []string
	downErr error
	onUp    func(device string)
	now     func() time.Time
	stamps  map[string]time.Time
}

func (f *fakeLinks) record(call string) {
	f.calls = append(f.calls, call)
	if f.now != nil {
		if f.stamps == nil {
			f.stamps = make(map[string]time.Time)
		}
		f.stamps[call] = f.now()
	}
}

func (f *fakeLinks) SetLinkDown(device string) error {
	f.record("down " + device)
	return f.downErr
}

func (f *fakeLinks) SetLinkUp(device string) error {
	f.record("up " + device)
	if f.onUp != nil {
		f.onUp(device)
	}
	return nil
}

// fakeProber answers from a per-host reachability table.
type fakeProber struct {
	mu        sync.Mutex
	reachable map[string]bool
	probes    []string
	now       func() time.Time
	times     []time.Time
}

func newFakeProber(reachable map[string]bool) *fakeProber {
	if reachable == nil {
		reachable = map[string]bool{}
	}
	return &fakeProber{reachable: reachable}
}

func (f *fakeProber) Check(target probe.Target, device string, cfg probe.Config) probe.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, target.Host+"@"+device)
	if f.now != nil {
		f.times = append(f.times, f.now())
	}
	if f.reachable[target.Host] {
		return probe.Result{OK: true, Sent: cfg.Count, Received: 1}
	}
	return probe.Result{Sent: cfg.Count, Err: errors.New("packet loss")}
}

func (f *fakeProber) setReachable(host string, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reachable[host] = ok
}

func (f *fakeProber) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.probes...)
}

// recordingObserver captures observer events.
type recordingObserver struct {
	probes   []string
	cycles   []string
	outcomes []string
}

func (r *recordingObserver) ObserveProbe(target string, ok bool) {
	r.probes = append(r.probes, fmt.Sprintf("%s=%t", target, ok))
}

func (r *recordingObserver) ObserveCycle(path string) {
	r.cycles = append(r.cycles, path)
}

func (r *recordingObserver) ObserveRun(outcome string, d time.Duration, finished time.Time) {
	r.outcomes = append(r.outcomes, outcome)
}

var testTargets = []probe.Target{{Host: "8.8.8.8"}, {Host: "1.1.1.1"}}

func testPolicy() Policy {
	return Policy{
		Targets:    testTargets,
		Probe:      probe.Config{Count: 3, Timeout: 2 * time.Second},
		SettleDown: 5 * time.Second,
		SettleUp:   15 * time.Second,
	}
}
