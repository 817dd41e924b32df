package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/echovoice/apiserver/types"
	"github.com/google/uuid"
)

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// AudioRepository handles persistence for the language -> sample URL table.
type AudioRepository struct {
	db *sql.DB
}

func NewAudioRepository(db *sql.DB) *AudioRepository {
	return &AudioRepository{db: db}
}

func (r *AudioRepository) GetByLanguage(ctx context.Context, language string) (types.AudioSample, error) {
	const query = `
		SELECT id, language, url, created_at, updated_at
		FROM audio_samples
		WHERE language = $1`
	var sample types.AudioSample
	err := r.db.QueryRowContext(ctx, query, normalizeLanguage(language)).Scan(
		&sample.ID,
		&sample.Language,
		&sample.URL,
		&sample.CreatedAt,
		&sample.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.AudioSample{}, ErrNotFound
		}
		return types.AudioSample{}, err
	}
	return sample, nil
}

// Upsert inserts or replaces the URL for a language. Used by the seed
// command; the API surface itself never writes this table.
func (r *AudioRepository) Upsert(ctx context.Context, sample types.AudioSample) (types.AudioSample, error) {
	now := time.Now()
	sample.ID = uuid.NewString()
	sample.Language = normalizeLanguage(sample.Language)
	sample.CreatedAt = now
	sample.UpdatedAt = now

	const query = `
		INSERT INTO audio_samples (id, language, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (language) DO UPDATE
		SET url = EXCLUDED.url, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		sample.ID,
		sample.Language,
		sample.URL,
		sample.CreatedAt,
		sample.UpdatedAt,
	).Scan(&sample.ID, &sample.CreatedAt); err != nil {
		return types.AudioSample{}, err
	}
	return sample, nil
}

// Count returns the number of rows in the sample table.
func (r *AudioRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audio_samples`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
