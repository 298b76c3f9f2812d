package wan

import (
	"fmt"
	"strings"
	"time"
)

// State is a step of the remediation state machine.
type State int

const (
	StateStart State = iota
	StateResolving
	StateChecking
	StateCycling
	StateVerifying
	StateHealthy
	StateRecovered
	StateDegraded
	StateResolutionFailed
)

var stateNames = map[State]string{
	StateStart:            "START",
	StateResolving:        "RESOLVING",
	StateChecking:         "CHECKING",
	StateCycling:          "CYCLING",
	StateVerifying:        "VERIFYING",
	StateHealthy:          "HEALTHY",
	StateRecovered:        "RECOVERED",
	StateDegraded:         "DEGRADED",
	StateResolutionFailed: "RESOLUTION_FAILED",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	switch s {
	case StateHealthy, StateRecovered, StateDegraded, StateResolutionFailed:
		return true
	}
	return false
}

// Outcome is the externally visible result of a run.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeHealthy
	OutcomeRecovered
	OutcomeDegraded
	OutcomeResolutionFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHealthy:
		return "HEALTHY"
	case OutcomeRecovered:
		return "RECOVERED"
	case OutcomeDegraded:
		return "DEGRADED"
	case OutcomeResolutionFailed:
		return "RESOLUTION_FAILED"
	}
	return "UNKNOWN"
}

// Outcomes lists every reportable outcome.
var Outcomes = []Outcome{OutcomeHealthy, OutcomeRecovered, OutcomeDegraded, OutcomeResolutionFailed}

// Transition is one logged state change.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// StepError records a control step that failed. The run continues past it.
type StepError struct {
	Step   string
	Target string
	Err    error
}

func (e StepError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Target, e.Err)
}

// Run is the context threaded through one pass of the state machine.
type Run struct {
	State       State
	Outcome     Outcome
	Identity    *Identity
	Transitions []Transition
	// ControlErrors holds failed down/up steps in execution order.
	ControlErrors []StepError
	// Err is set only for RESOLUTION_FAILED.
	Err      error
	Cycled   bool
	Started  time.Time
	Finished time.Time
}

func newRun(now time.Time) *Run {
	return &Run{State: StateStart, Started: now}
}

func (r *Run) advance(to State, now time.Time) Transition {
	t := Transition{From: r.State, To: to, At: now}
	r.Transitions = append(r.Transitions, t)
	r.State = to
	return t
}

// Duration is the wall time from start to the terminal state.
func (r *Run) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Path renders the visited states, e.g. "START>RESOLVING>CHECKING>HEALTHY".
func (r *Run) Path() string {
	parts := []string{StateStart.String()}
	for _, t := range r.Transitions {
		parts = append(parts, t.To.String())
	}
	return strings.Join(parts, ">")
}

// ExitCode maps the outcome to a process exit status. DEGRADED uses
// degradedCode; RESOLUTION_FAILED is always non-zero.
func (r *Run) ExitCode(degradedCode int) int {
	switch r.Outcome {
	case OutcomeHealthy, OutcomeRecovered:
		return 0
	case OutcomeDegraded:
		return degradedCode
	}
	return 1
}

// Summary is the single line reported at the end of a run.
func (r *Run) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "outcome=%s", r.Outcome)
	if r.Identity != nil {
		fmt.Fprintf(&b, " wan=%s kind=%s", r.Identity.Name(), r.Identity.Kind())
		if dev := r.Identity.Device(); dev != "" {
			fmt.Fprintf(&b, " device=%s", dev)
		}
	}
	fmt.Fprintf(&b, " path=%s duration=%s", r.Path(), r.Duration().Round(time.Millisecond))
	if len(r.ControlErrors) > 0 {
		errs := make([]string, len(r.ControlErrors))
		for i, e := range r.ControlErrors {
			errs[i] = e.Step + ":" + e.Target
		}
		fmt.Fprintf(&b, " control_errors=%s", strings.Join(errs, ","))
	}
	if r.Err != nil {
		fmt.Fprintf(&b, " error=%q", r.Err.Error())
	}
	return b.String()
}
