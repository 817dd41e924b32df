package types

import "time"

// AudioSample maps a language to the URL of its demo audio clip.
// Languages are unique and stored lowercased.
type AudioSample struct {
	ID        string    `json:"id" db:"id"`
	Language  string    `json:"language" db:"language"`
	URL       string    `json:"audioUrl" db:"url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
