package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Submitter delivers the completed accumulator to the onboarding
// gateway and returns the assigned profile id.
type Submitter interface {
	Submit(ctx context.Context, record Record) (string, error)
}

// Flow runs the wizard state machine with the two behaviors Apply
// cannot express: the auto-advance settle timer and the exactly-once
// terminal submission.
//
// Single-choice steps (theme, referral source, persona) auto-advance a
// settle delay after an edit, sparing an explicit Next click. The delay
// is cosmetic: any event dispatched before the timer fires supersedes
// it, and the timer advances over whatever the accumulator holds at
// fire time, never a snapshot.
//
// Submission is best-effort. A backend failure is recorded on the state
// and logged, but the flow still completes; the product never blocks on
// backend availability.
type Flow struct {
	mu        sync.Mutex
	state     State
	submitter Submitter
	logger    *slog.Logger
	settle    time.Duration
	timer     *time.Timer
	timerGen  int
	submitted bool
}

// NewFlow constructs a Flow. A zero settle delay disables auto-advance.
func NewFlow(logger *slog.Logger, submitter Submitter, settle time.Duration) *Flow {
	return &Flow{
		state:     NewState(),
		submitter: submitter,
		logger:    logger,
		settle:    settle,
	}
}

// State returns a snapshot of the current machine state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Dispatch feeds an event to the machine. Any pending auto-advance
// timer is cancelled first, so a user action always supersedes it.
func (f *Flow) Dispatch(ctx context.Context, event Event) State {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelTimerLocked()
	f.applyLocked(ctx, event)

	if _, ok := event.(Edit); ok && f.settle > 0 && autoAdvances(f.state.Step) {
		f.scheduleAdvanceLocked(ctx)
	}
	return f.state
}

// Reset abandons the current run and starts a fresh accumulator. No
// partial state survives.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelTimerLocked()
	f.state = NewState()
	f.submitted = false
}

// Completed reports whether the flow has reached its terminal step.
func (f *Flow) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Step == StepCompleted
}

func (f *Flow) applyLocked(ctx context.Context, event Event) {
	prev := f.state
	f.state = Apply(f.state, event)

	if prev.Step == StepPricingPlan && f.state.Step == StepCompleted && !f.submitted {
		f.submitted = true
		profileID, err := f.submitter.Submit(ctx, f.state.Record)
		if err != nil {
			f.logger.Warn("onboarding submission failed, completing locally",
				slog.Any("error", err))
			f.state.SubmitErr = err
			return
		}
		f.state.Submitted = true
		f.state.ProfileID = profileID
	}
}

func (f *Flow) scheduleAdvanceLocked(ctx context.Context) {
	f.timerGen++
	gen := f.timerGen
	step := f.state.Step
	f.timer = time.AfterFunc(f.settle, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// A later event or timer supersedes this one.
		if gen != f.timerGen || f.state.Step != step {
			return
		}
		f.timer = nil
		f.applyLocked(ctx, Next{})
	})
}

func (f *Flow) cancelTimerLocked() {
	f.timerGen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func autoAdvances(step Step) bool {
	switch step {
	case StepTheme, StepReferralSource, StepPersona:
		return true
	default:
		return false
	}
}
