package handlers

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/echovoice/apiserver/internal/store"
	"github.com/echovoice/apiserver/types"
	"github.com/google/uuid"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserRepo mirrors the contract of the Postgres user repository:
// normalized unique emails, server-assigned ids, sentinel errors.
type mockUserRepo struct {
	users    map[string]types.User
	storeErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]types.User)}
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	if m.storeErr != nil {
		return types.User{}, m.storeErr
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	if m.storeErr != nil {
		return types.User{}, m.storeErr
	}
	user, ok := m.users[store.NormalizeEmail(email)]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if m.storeErr != nil {
		return types.User{}, m.storeErr
	}
	user.Email = store.NormalizeEmail(user.Email)
	if _, exists := m.users[user.Email]; exists {
		return types.User{}, store.ErrDuplicateEmail
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.Email] = user
	return user, nil
}

func (m *mockUserRepo) delete(id string) {
	for email, user := range m.users {
		if user.ID == id {
			delete(m.users, email)
		}
	}
}

// mockOnboardingRepo stores profiles in memory with assigned uuids.
type mockOnboardingRepo struct {
	profiles map[string]types.OnboardingProfile
	storeErr error
}

func newMockOnboardingRepo() *mockOnboardingRepo {
	return &mockOnboardingRepo{profiles: make(map[string]types.OnboardingProfile)}
}

func (m *mockOnboardingRepo) GetByID(ctx context.Context, id string) (types.OnboardingProfile, error) {
	if m.storeErr != nil {
		return types.OnboardingProfile{}, m.storeErr
	}
	profile, ok := m.profiles[id]
	if !ok {
		return types.OnboardingProfile{}, store.ErrNotFound
	}
	return profile, nil
}

func (m *mockOnboardingRepo) Create(ctx context.Context, profile types.OnboardingProfile) (types.OnboardingProfile, error) {
	if m.storeErr != nil {
		return types.OnboardingProfile{}, m.storeErr
	}
	now := time.Now()
	profile.ID = uuid.NewString()
	profile.PersonalDetails.Email = store.NormalizeEmail(profile.PersonalDetails.Email)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	m.profiles[profile.ID] = profile
	return profile, nil
}

// mockAudioRepo stores samples keyed by lowercased language.
type mockAudioRepo struct {
	samples map[string]types.AudioSample
}

func newMockAudioRepo() *mockAudioRepo {
	return &mockAudioRepo{samples: make(map[string]types.AudioSample)}
}

func (m *mockAudioRepo) GetByLanguage(ctx context.Context, language string) (types.AudioSample, error) {
	sample, ok := m.samples[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return types.AudioSample{}, store.ErrNotFound
	}
	return sample, nil
}

func (m *mockAudioRepo) Upsert(ctx context.Context, sample types.AudioSample) (types.AudioSample, error) {
	now := time.Now()
	sample.ID = uuid.NewString()
	sample.Language = strings.ToLower(strings.TrimSpace(sample.Language))
	sample.CreatedAt = now
	sample.UpdatedAt = now
	m.samples[sample.Language] = sample
	return sample, nil
}

func (m *mockAudioRepo) Count(ctx context.Context) (int, error) {
	return len(m.samples), nil
}
