package services

import (
	"context"

	"github.com/echovoice/apiserver/types"
)

// AudioRepository defines persistence operations for audio samples.
type AudioRepository interface {
	GetByLanguage(ctx context.Context, language string) (types.AudioSample, error)
	Upsert(ctx context.Context, sample types.AudioSample) (types.AudioSample, error)
	Count(ctx context.Context) (int, error)
}

// AudioService encapsulates audio-sample lookups.
type AudioService struct {
	repo AudioRepository
}

func NewAudioService(repo AudioRepository) *AudioService {
	return &AudioService{repo: repo}
}

func (s *AudioService) GetByLanguage(ctx context.Context, language string) (types.AudioSample, error) {
	return s.repo.GetByLanguage(ctx, language)
}

func (s *AudioService) Upsert(ctx context.Context, sample types.AudioSample) (types.AudioSample, error) {
	return s.repo.Upsert(ctx, sample)
}

func (s *AudioService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
