package domain

import (
	"time"

	"github.com/google/uuid"
)

// Translation is one processed request: the core transliteration output plus
// whatever the collaborators (phrasebook, translator, speech) contributed.
type Translation struct {
	ID              uuid.UUID
	Input           string
	ArabicRaw       string
	ArabicCorrected string
	English         string
	Reference       string
	ArabicAudioURL  *string
	EnglishAudioURL *string
	// FromPhrasebook is true when English and audio came from the curated
	// phrasebook instead of the remote providers.
	FromPhrasebook bool
	CreatedAt      time.Time
}

// Page holds paging parameters for list queries.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Validate checks paging bounds.
func (p Page) Validate() error {
	var ve ValidationError
	if p.Limit <= 0 {
		ve.Add("limit", "must be positive")
	} else if p.Limit > MaxPageLimit {
		ve.Add("limit", "must not exceed 100")
	}
	if p.Offset < 0 {
		ve.Add("offset", "must not be negative")
	}
	return ve.Err()
}
