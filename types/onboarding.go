package types

import "time"

// PersonalDetails groups the identity fields collected during the
// personal-details step of the onboarding wizard.
type PersonalDetails struct {
	// Name is the respondent's display or full name.
	Name string `json:"name" db:"name"`

	// Age is the respondent's age in years. Valid range is 13-120.
	Age int `json:"age" db:"age"`

	// Email is the respondent's email address, stored lowercased and trimmed.
	Email string `json:"email" db:"email"`
}

// OnboardingProfile is the aggregate record produced by one completed
// wizard run. Profiles are immutable once created and carry no link to
// a user account: the wizard does not require authentication.
type OnboardingProfile struct {
	// ID is the unique identifier of the profile, assigned by the server.
	ID string `json:"_id" db:"id"`

	// Theme is the selected UI theme, "light" or "dark".
	Theme string `json:"theme" db:"theme"`

	// PersonalDetails holds the name, age and email collected by the wizard.
	PersonalDetails PersonalDetails `json:"personalDetails"`

	// ReferralSource records how the respondent heard about the product.
	ReferralSource string `json:"referralSource" db:"referral_source"`

	// Persona is the self-selected user category.
	Persona string `json:"persona" db:"persona"`

	// PricingPlan is the plan chosen on the final wizard step.
	PricingPlan string `json:"pricingPlan" db:"pricing_plan"`

	// CreatedAt is the timestamp when the profile was submitted.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// UpdatedAt mirrors CreatedAt; profiles are never modified.
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
