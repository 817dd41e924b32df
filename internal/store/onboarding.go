package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/echovoice/apiserver/types"
	"github.com/google/uuid"
)

// OnboardingRepository handles persistence for onboarding profiles.
type OnboardingRepository struct {
	db *sql.DB
}

func NewOnboardingRepository(db *sql.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

func (r *OnboardingRepository) GetByID(ctx context.Context, id string) (types.OnboardingProfile, error) {
	const query = `
		SELECT id, theme, name, age, email, referral_source, persona, pricing_plan, created_at, updated_at
		FROM onboarding_profiles
		WHERE id = $1`
	var profile types.OnboardingProfile
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Theme,
		&profile.PersonalDetails.Name,
		&profile.PersonalDetails.Age,
		&profile.PersonalDetails.Email,
		&profile.ReferralSource,
		&profile.Persona,
		&profile.PricingPlan,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.OnboardingProfile{}, ErrNotFound
		}
		return types.OnboardingProfile{}, err
	}
	return profile, nil
}

// Create inserts a profile. Repeat submissions are allowed; there is no
// uniqueness constraint across profiles.
func (r *OnboardingRepository) Create(ctx context.Context, profile types.OnboardingProfile) (types.OnboardingProfile, error) {
	now := time.Now()
	profile.ID = uuid.NewString()
	profile.PersonalDetails.Email = NormalizeEmail(profile.PersonalDetails.Email)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	const query = `
		INSERT INTO onboarding_profiles (id, theme, name, age, email, referral_source, persona, pricing_plan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Theme,
		profile.PersonalDetails.Name,
		profile.PersonalDetails.Age,
		profile.PersonalDetails.Email,
		profile.ReferralSource,
		profile.Persona,
		profile.PricingPlan,
		profile.CreatedAt,
		profile.UpdatedAt,
	); err != nil {
		return types.OnboardingProfile{}, err
	}
	return profile, nil
}
