package services

import (
	"context"

	"github.com/echovoice/apiserver/types"
)

// OnboardingRepository defines persistence operations for onboarding profiles.
type OnboardingRepository interface {
	GetByID(ctx context.Context, id string) (types.OnboardingProfile, error)
	Create(ctx context.Context, profile types.OnboardingProfile) (types.OnboardingProfile, error)
}

// OnboardingService encapsulates onboarding-profile use-cases.
type OnboardingService struct {
	repo OnboardingRepository
}

func NewOnboardingService(repo OnboardingRepository) *OnboardingService {
	return &OnboardingService{repo: repo}
}

func (s *OnboardingService) Get(ctx context.Context, id string) (types.OnboardingProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OnboardingService) Create(ctx context.Context, profile types.OnboardingProfile) (types.OnboardingProfile, error) {
	return s.repo.Create(ctx, profile)
}
