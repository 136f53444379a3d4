package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word is a user's vocabulary entry.
type Word struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	English      string
	Meaning      string
	CoreImage    string
	Category     Category
	PartOfSpeech []PartOfSpeech
	ToeicLevel   *ToeicLevel
	Status       Status
	Examples     []Example
	Comment      string
	CreatedAt    time.Time
}

// Example is a usage example attached to a word.
type Example struct {
	Sentence    string
	Translation string
}

// ApplyDefaults enforces creation-time invariants on a new word:
// status starts at Beginner, the part-of-speech set is never empty,
// and any English form containing whitespace is tagged as an idiom.
func (w *Word) ApplyDefaults() {
	if !w.Status.IsValid() {
		w.Status = StatusBeginner
	}
	if strings.ContainsAny(strings.TrimSpace(w.English), " \t") && !w.HasPartOfSpeech(PartOfSpeechIdiom) {
		w.PartOfSpeech = append(w.PartOfSpeech, PartOfSpeechIdiom)
	}
	if len(w.PartOfSpeech) == 0 {
		w.PartOfSpeech = []PartOfSpeech{PartOfSpeechOther}
	}
}

// HasPartOfSpeech reports whether the word carries the given tag.
func (w *Word) HasPartOfSpeech(pos PartOfSpeech) bool {
	for _, p := range w.PartOfSpeech {
		if p == pos {
			return true
		}
	}
	return false
}

// ToeicLevelOrZero returns the TOEIC level, treating an unset level as 0.
// Both the level floor filter and the TOEIC sort orders rely on this.
func (w *Word) ToeicLevelOrZero() int {
	if w.ToeicLevel == nil {
		return 0
	}
	return int(*w.ToeicLevel)
}

// PronunciationURL derives a dictionary lookup link for the English form.
// The link is a convenience, not authoritative data, and is never stored.
func (w *Word) PronunciationURL() string {
	return "https://dictionary.cambridge.org/pronunciation/english/" + url.PathEscape(strings.ToLower(strings.TrimSpace(w.English)))
}
