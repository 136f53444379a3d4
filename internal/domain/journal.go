package domain

import (
	"time"

	"github.com/google/uuid"
)

// JournalEntry is a per-calendar-day free-text note. One entry exists per
// date; writing again for the same date overwrites the previous content.
type JournalEntry struct {
	UserID    uuid.UUID
	Date      string // ISO date, "2006-01-02"
	Content   string
	UpdatedAt time.Time
}

// ParseJournalDate validates an ISO journal date key.
func ParseJournalDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
