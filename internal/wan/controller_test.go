package wan

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/wanwatch/internal/clock"
	"grimm.is/wanwatch/internal/probe"
)

type harness struct {
	ifaces *fakeInterfaces
	routes *fakeRoutes
	links  *fakeLinks
	prober *fakeProber
	clock  *clock.MockClock
	obs    *recordingObserver
	log    *bytes.Buffer
	ctrl   *Controller
}

func newHarness(t *testing.T, ifaces *fakeInterfaces, routes *fakeRoutes, reachable map[string]bool) *harness {
	t.Helper()
	h := &harness{
		ifaces: ifaces,
		routes: routes,
		links:  &fakeLinks{},
		prober: newFakeProber(reachable),
		clock:  clock.NewMockClock(time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)),
		obs:    &recordingObserver{},
		log:    &bytes.Buffer{},
	}
	h.ifaces.now = h.clock.Now
	h.links.now = h.clock.Now
	h.prober.now = h.clock.Now
	ctrl, err := NewController(Deps{
		Interfaces: h.ifaces,
		Routes:     h.routes,
		Links:      h.links,
		Prober:     h.prober,
		Loopback:   "loopback",
		Clock:      h.clock,
		Observer:   h.obs,
		Logger:     testLogger(h.log),
	}, testPolicy())
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

func TestRun_ScenarioA_HealthyWithoutDefaultRoute(t *testing.T) {
	h := newHarness(t,
		newFakeInterfaces("loopback", "lan", "wan").set("lan", true, "br-lan").set("wan", true, "eth1"),
		&fakeRoutes{},
		map[string]bool{"8.8.8.8": true, "1.1.1.1": true})

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeHealthy, run.Outcome)
	assert.Equal(t, 0, run.ExitCode(3))
	assert.Equal(t, "wan", run.Identity.Name())
	assert.Empty(t, h.ifaces.calls)
	assert.Empty(t, h.links.calls)
	assert.Empty(t, h.clock.Sleeps())
	assert.Zero(t, h.routes.queries)
	assert.Equal(t, []string{"8.8.8.8@eth1"}, h.prober.calls())
	assert.Equal(t, "START>RESOLVING>CHECKING>HEALTHY", run.Path())
	assert.False(t, run.Cycled)
}

func TestRun_ScenarioB_FallbackTargetSucceeds(t *testing.T) {
	h := newHarness(t,
		newFakeInterfaces("wan").set("wan", true, "eth1"),
		&fakeRoutes{},
		map[string]bool{"1.1.1.1": true})

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeHealthy, run.Outcome)
	assert.Empty(t, h.ifaces.calls)
	assert.Empty(t, h.links.calls)
	assert.Equal(t, []string{"8.8.8.8@eth1", "1.1.1.1@eth1"}, h.prober.calls())
	assert.Equal(t, []string{"8.8.8.8=false", "1.1.1.1=true"}, h.obs.probes)
}

func TestRun_ScenarioC_Recovered(t *testing.T) {
	ifaces := newFakeInterfaces("lan", "wan").set("lan", true, "br-lan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	// The PPPoE session comes back on a new device once wan is up again.
	ifaces.onUp = func(name string) {
		ifaces.set(name, true, "pppoe-wan")
		h.prober.setReachable("1.1.1.1", true)
	}

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeRecovered, run.Outcome)
	assert.Equal(t, 0, run.ExitCode(3))
	assert.Equal(t, []string{"down wan", "up wan"}, ifaces.calls)
	assert.Empty(t, h.links.calls)
	assert.Equal(t, "pppoe-wan", run.Identity.Device())
	assert.Equal(t, []string{
		"8.8.8.8@eth1", "1.1.1.1@eth1",
		"8.8.8.8@pppoe-wan", "1.1.1.1@pppoe-wan",
	}, h.prober.calls())
	assert.Equal(t, "START>RESOLVING>CHECKING>CYCLING>VERIFYING>RECOVERED", run.Path())
	assert.Equal(t, []string{"logical"}, h.obs.cycles)
	assert.Equal(t, []string{"RECOVERED"}, h.obs.outcomes)
	// Discovery, the CHECKING refresh and the VERIFYING refresh.
	assert.Equal(t, 3, ifaces.statusQueries("wan"))
}

func TestRun_ScenarioC_Degraded(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeDegraded, run.Outcome)
	assert.Equal(t, 0, run.ExitCode(0))
	assert.Equal(t, 3, run.ExitCode(3))
	assert.Equal(t, []string{"down wan", "up wan"}, ifaces.calls)
	assert.Len(t, h.prober.calls(), 4)
	assert.Equal(t, StateDegraded, run.State)
	assert.Contains(t, h.log.String(), "outcome=DEGRADED")
}

func TestRun_NoRetryLoop(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	h.ctrl.Run()
	assert.Len(t, ifaces.calls, 2)
	assert.Len(t, h.clock.Sleeps(), 2)
}

func TestRun_SettleSleepsMeetPolicy(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	start := h.clock.Now()
	run := h.ctrl.Run()

	sleeps := h.clock.Sleeps()
	require.Len(t, sleeps, 2)
	assert.GreaterOrEqual(t, h.clock.Since(start), 20*time.Second)
	assert.Equal(t, 20*time.Second, run.Duration())

	downAt, upAt := ifaces.stamps["down wan"], ifaces.stamps["up wan"]
	require.False(t, downAt.IsZero())
	require.False(t, upAt.IsZero())
	// Two checking probes precede the first verification probe.
	require.Len(t, h.prober.times, 4)
	verifyAt := h.prober.times[2]

	assert.GreaterOrEqual(t, upAt.Sub(downAt), 5*time.Second)
	assert.GreaterOrEqual(t, verifyAt.Sub(upAt), 15*time.Second)
	assert.Equal(t, start, downAt, "down is issued without delay after checking")
}

func TestRun_PhysicalSettleSleepsMeetPolicy(t *testing.T) {
	ifaces := newFakeInterfaces("lan").set("lan", true, "br-lan")
	h := newHarness(t, ifaces, &fakeRoutes{device: "eth0"}, nil)

	h.ctrl.Run()

	downAt, upAt := h.links.stamps["down eth0"], h.links.stamps["up eth0"]
	require.False(t, downAt.IsZero())
	require.False(t, upAt.IsZero())
	require.Len(t, h.prober.times, 4)
	verifyAt := h.prober.times[2]

	assert.GreaterOrEqual(t, upAt.Sub(downAt), 5*time.Second)
	assert.GreaterOrEqual(t, verifyAt.Sub(upAt), 15*time.Second)
}

func TestRun_PhysicalOnlyUsesLinkControl(t *testing.T) {
	ifaces := newFakeInterfaces("lan").set("lan", true, "br-lan")
	h := newHarness(t, ifaces, &fakeRoutes{device: "eth0"}, nil)
	h.links.onUp = func(string) { h.prober.setReachable("8.8.8.8", true) }

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeRecovered, run.Outcome)
	assert.Equal(t, KindPhysicalOnly, run.Identity.Kind())
	assert.Equal(t, []string{"down eth0", "up eth0"}, h.links.calls)
	assert.Empty(t, ifaces.calls)
	assert.Equal(t, "8.8.8.8@eth0", h.prober.calls()[0])
	assert.Equal(t, []string{"physical"}, h.obs.cycles)
}

func TestRun_ResolutionFailedIssuesNoProbe(t *testing.T) {
	h := newHarness(t,
		newFakeInterfaces("loopback", "lan").set("lan", true, "br-lan"),
		&fakeRoutes{},
		map[string]bool{"8.8.8.8": true})

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeResolutionFailed, run.Outcome)
	assert.NotZero(t, run.ExitCode(0))
	assert.ErrorIs(t, run.Err, ErrNoWanFound)
	assert.Nil(t, run.Identity)
	assert.Empty(t, h.prober.calls())
	assert.Empty(t, h.ifaces.calls)
	assert.Empty(t, h.links.calls)
	assert.Equal(t, "START>RESOLVING>RESOLUTION_FAILED", run.Path())
	assert.Contains(t, run.Summary(), "outcome=RESOLUTION_FAILED")
}

func TestRun_ControlFailureProceedsAndIsRecorded(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	ifaces.downErr = errors.New("ifdown: exit status 1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	run := h.ctrl.Run()
	assert.Equal(t, OutcomeDegraded, run.Outcome)
	assert.Equal(t, []string{"down wan", "up wan"}, ifaces.calls)
	assert.Len(t, h.clock.Sleeps(), 2)
	require.Len(t, run.ControlErrors, 1)
	assert.Equal(t, "down", run.ControlErrors[0].Step)
	assert.Equal(t, "wan", run.ControlErrors[0].Target)
	assert.Contains(t, run.Summary(), "control_errors=down:wan")
	assert.Contains(t, h.log.String(), "interface control failed")
}

func TestRun_TransitionsAreLoggedWithTimestamps(t *testing.T) {
	h := newHarness(t, newFakeInterfaces("wan").set("wan", true, "eth1"), &fakeRoutes{}, map[string]bool{"8.8.8.8": true})

	run := h.ctrl.Run()
	require.Len(t, run.Transitions, 3)
	for _, tr := range run.Transitions {
		assert.False(t, tr.At.IsZero())
	}
	assert.Equal(t, StateStart, run.Transitions[0].From)
	assert.Contains(t, h.log.String(), "state transition")
	assert.True(t, run.State.Terminal())
}

func TestRun_FreshIdentityPerRun(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, map[string]bool{"8.8.8.8": true})

	first := h.ctrl.Run()
	ifaces.set("wan", true, "eth2")
	second := h.ctrl.Run()

	assert.NotSame(t, first.Identity, second.Identity)
	assert.Equal(t, "eth1", first.Identity.Device())
	assert.Equal(t, "eth2", second.Identity.Device())
}

func TestController_Check(t *testing.T) {
	ifaces := newFakeInterfaces("wan").set("wan", true, "eth1")
	h := newHarness(t, ifaces, &fakeRoutes{}, nil)

	id, ok, err := h.ctrl.Check()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "wan", id.Name())
	assert.Empty(t, ifaces.calls)

	h.ifaces.names = nil
	_, _, err = h.ctrl.Check()
	assert.ErrorIs(t, err, ErrNoWanFound)
}

func TestNewController_Validation(t *testing.T) {
	deps := Deps{
		Interfaces: newFakeInterfaces(),
		Routes:     &fakeRoutes{},
		Links:      &fakeLinks{},
		Prober:     newFakeProber(nil),
	}

	_, err := NewController(Deps{}, testPolicy())
	assert.Error(t, err)

	bad := testPolicy()
	bad.Targets = nil
	_, err = NewController(deps, bad)
	assert.ErrorContains(t, err, "target")

	bad = testPolicy()
	bad.Probe = probe.Config{Count: 0, Timeout: time.Second}
	_, err = NewController(deps, bad)
	assert.ErrorContains(t, err, "count")

	bad = testPolicy()
	bad.SettleUp = -time.Second
	_, err = NewController(deps, bad)
	assert.ErrorContains(t, err, "settle")
}

func TestOutcomeAndStateNames(t *testing.T) {
	assert.Equal(t, "HEALTHY", OutcomeHealthy.String())
	assert.Equal(t, "RESOLUTION_FAILED", OutcomeResolutionFailed.String())
	assert.Equal(t, "UNKNOWN", Outcome(99).String())
	assert.Equal(t, "VERIFYING", StateVerifying.String())
	assert.Equal(t, "State(42)", State(42).String())
	assert.False(t, StateCycling.Terminal())
}
