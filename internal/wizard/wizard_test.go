package wizard

import (
	"testing"

	"github.com/echovoice/apiserver/types"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNewStateDefaults(t *testing.T) {
	state := NewState()
	assert.Equal(t, StepTheme, state.Step)
	assert.Equal(t, DefaultTheme, state.Record.Theme)
	assert.False(t, state.Submitted)
}

func TestLinearAdvance(t *testing.T) {
	state := NewState()

	state = Apply(state, Next{Update: Update{Theme: strPtr("light")}})
	assert.Equal(t, StepPersonalDetails, state.Step)
	assert.Equal(t, "light", state.Record.Theme)

	details := types.PersonalDetails{Name: "Ann", Age: 28, Email: "ann@example.com"}
	state = Apply(state, Next{Update: Update{PersonalDetails: &details}})
	assert.Equal(t, StepReferralSource, state.Step)

	state = Apply(state, Next{Update: Update{ReferralSource: strPtr("search")}})
	state = Apply(state, Next{Update: Update{Persona: strPtr("creator")}})
	assert.Equal(t, StepPricingPlan, state.Step)

	state = Apply(state, Next{Update: Update{PricingPlan: strPtr("starter")}})
	assert.Equal(t, StepCompleted, state.Step)
	assert.Equal(t, Record{
		Theme:           "light",
		PersonalDetails: details,
		ReferralSource:  "search",
		Persona:         "creator",
		PricingPlan:     "starter",
	}, state.Record)
}

func TestBackOneStepOnly(t *testing.T) {
	state := NewState()
	state = Apply(state, Next{})
	state = Apply(state, Next{})
	assert.Equal(t, StepReferralSource, state.Step)

	state = Apply(state, Back{})
	assert.Equal(t, StepPersonalDetails, state.Step)

	state = Apply(state, Back{})
	state = Apply(state, Back{})
	assert.Equal(t, StepTheme, state.Step, "back at the first step stays put")
}

func TestBackPreservesAccumulator(t *testing.T) {
	state := NewState()
	state = Apply(state, Next{Update: Update{Theme: strPtr("light")}})
	state = Apply(state, Back{})
	assert.Equal(t, "light", state.Record.Theme)
}

func TestSkipRecordsSentinel(t *testing.T) {
	state := NewState()
	state = Apply(state, Next{})
	state = Apply(state, Next{})
	assert.Equal(t, StepReferralSource, state.Step)

	state = Apply(state, Skip{})
	assert.Equal(t, StepPersona, state.Step)
	assert.Equal(t, Skipped, state.Record.ReferralSource)

	state = Apply(state, Skip{})
	assert.Equal(t, Skipped, state.Record.Persona)
	state = Apply(state, Skip{})
	assert.Equal(t, Skipped, state.Record.PricingPlan)
	assert.Equal(t, StepCompleted, state.Step)
}

func TestSkipThemeKeepsDefault(t *testing.T) {
	state := NewState()
	state = Apply(state, Skip{})
	assert.Equal(t, StepPersonalDetails, state.Step)
	assert.Equal(t, DefaultTheme, state.Record.Theme)
}

func TestEditStaysOnStep(t *testing.T) {
	state := NewState()
	state = Apply(state, Edit{Update: Update{Theme: strPtr("light")}})
	assert.Equal(t, StepTheme, state.Step)
	assert.Equal(t, "light", state.Record.Theme)

	// A later edit wins; the accumulator never holds a stale value.
	state = Apply(state, Edit{Update: Update{Theme: strPtr("dark")}})
	assert.Equal(t, "dark", state.Record.Theme)
}

func TestCompletedIsTerminal(t *testing.T) {
	state := NewState()
	for state.Step != StepCompleted {
		state = Apply(state, Skip{})
	}

	after := Apply(state, Next{})
	assert.Equal(t, state, after)
	after = Apply(state, Back{})
	assert.Equal(t, state, after)
}
