// Package wizard models the onboarding flow as an explicit finite
// state machine: an enumerated step, one accumulator record, and pure
// transition functions that need no UI to be exercised.
package wizard

import "github.com/echovoice/apiserver/types"

// Step identifies the active wizard step.
type Step int

const (
	StepTheme Step = iota
	StepPersonalDetails
	StepReferralSource
	StepPersona
	StepPricingPlan
	// StepCompleted is terminal. It is reached after the pricing step
	// regardless of whether the backend accepted the submission.
	StepCompleted
)

func (s Step) String() string {
	switch s {
	case StepTheme:
		return "theme"
	case StepPersonalDetails:
		return "personal_details"
	case StepReferralSource:
		return "referral_source"
	case StepPersona:
		return "persona"
	case StepPricingPlan:
		return "pricing_plan"
	case StepCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Skipped is the sentinel recorded for a step the user skipped.
const Skipped = "skipped"

// DefaultTheme is preselected when the flow starts; skipping the theme
// step keeps it, since the theme enum admits no sentinel.
const DefaultTheme = "dark"

// Record is the accumulator merged across steps. It is the sole source
// of truth handed to the terminal submission.
type Record struct {
	Theme           string
	PersonalDetails types.PersonalDetails
	ReferralSource  string
	Persona         string
	PricingPlan     string
}

// Update is a partial record; nil fields leave the accumulator untouched.
type Update struct {
	Theme           *string
	PersonalDetails *types.PersonalDetails
	ReferralSource  *string
	Persona         *string
	PricingPlan     *string
}

// State is the full machine state. SubmitErr is informational: a failed
// backend write still completes the flow.
type State struct {
	Step      Step
	Record    Record
	Submitted bool
	ProfileID string
	SubmitErr error
}

// NewState returns the initial state of a fresh wizard run.
func NewState() State {
	return State{
		Step:   StepTheme,
		Record: Record{Theme: DefaultTheme},
	}
}

// Event is a wizard input.
type Event interface{ isEvent() }

// Next merges an optional update and advances one step.
type Next struct{ Update Update }

// Back returns to the immediately preceding step. It never skips more
// than one step backward.
type Back struct{}

// Skip advances one step, recording the sentinel for the current step's
// field.
type Skip struct{}

// Edit merges an update without changing step.
type Edit struct{ Update Update }

func (Next) isEvent() {}
func (Back) isEvent() {}
func (Skip) isEvent() {}
func (Edit) isEvent() {}

// Apply is the pure transition function (state, event) -> state. It has
// no side effects: submission on entering StepCompleted is the Flow's
// job.
func Apply(state State, event Event) State {
	if state.Step == StepCompleted {
		return state
	}

	switch e := event.(type) {
	case Edit:
		state.Record = merge(state.Record, e.Update)
	case Next:
		state.Record = merge(state.Record, e.Update)
		state.Step++
	case Back:
		if state.Step > StepTheme {
			state.Step--
		}
	case Skip:
		state.Record = skipCurrent(state.Record, state.Step)
		state.Step++
	}
	return state
}

func merge(record Record, update Update) Record {
	if update.Theme != nil {
		record.Theme = *update.Theme
	}
	if update.PersonalDetails != nil {
		record.PersonalDetails = *update.PersonalDetails
	}
	if update.ReferralSource != nil {
		record.ReferralSource = *update.ReferralSource
	}
	if update.Persona != nil {
		record.Persona = *update.Persona
	}
	if update.PricingPlan != nil {
		record.PricingPlan = *update.PricingPlan
	}
	return record
}

func skipCurrent(record Record, step Step) Record {
	switch step {
	case StepTheme:
		// Theme keeps its preselected value.
	case StepPersonalDetails:
		record.PersonalDetails.Name = Skipped
	case StepReferralSource:
		record.ReferralSource = Skipped
	case StepPersona:
		record.Persona = Skipped
	case StepPricingPlan:
		record.PricingPlan = Skipped
	}
	return record
}
