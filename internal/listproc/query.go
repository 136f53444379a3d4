package listproc

import (
	"strconv"
	"strings"
	"time"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// SortOrder is one of the fixed display orderings.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"     // createdAt descending
	SortOldest    SortOrder = "oldest"     // createdAt ascending
	SortAlphaAsc  SortOrder = "a-z"        // english, locale-aware ascending
	SortAlphaDesc SortOrder = "z-a"        // english, locale-aware descending
	SortToeicHigh SortOrder = "toeic-high" // toeicLevel (0 if absent) descending
	SortToeicLow  SortOrder = "toeic-low"  // toeicLevel (0 if absent) ascending
)

func (s SortOrder) String() string { return string(s) }

func (s SortOrder) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortAlphaAsc, SortAlphaDesc, SortToeicHigh, SortToeicLow:
		return true
	}
	return false
}

// ParseSortOrder maps a raw string to a SortOrder, falling back to newest
// for anything unrecognized.
func ParseSortOrder(s string) SortOrder {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if !order.IsValid() {
		return SortNewest
	}
	return order
}

// Query is the exhaustively-enumerated set of list parameters held in UI
// state. Zero values mean "no constraint". It is a plain value; the
// processor never stores it.
type Query struct {
	// Search matches case-insensitively as a substring of English and
	// case-sensitively as a substring of Meaning. Empty matches everything.
	Search string

	// Category, Status and PartOfSpeech are exact-match constraints;
	// the empty string is the "All" sentinel. PartOfSpeech matches when
	// the word's tag set contains the value.
	Category     domain.Category
	Status       domain.Status
	PartOfSpeech domain.PartOfSpeech

	// ToeicMin keeps words whose level (0 when absent) is >= the value.
	ToeicMin *int

	// DateFrom/DateTo are inclusive calendar bounds on CreatedAt,
	// compared at local day boundaries.
	DateFrom *time.Time
	DateTo   *time.Time

	// IndexFrom/IndexTo are a 1-based inclusive positional range over the
	// base-ordered full collection, applied before the predicate filters.
	IndexFrom *int
	IndexTo   *int

	// Sort is the live display order.
	Sort SortOrder
}

// RangeActive reports whether a positional range filter is in effect.
// A single bound is enough; both bounds empty releases the range.
func (q Query) RangeActive() bool {
	return q.IndexFrom != nil || q.IndexTo != nil
}

// ParseOptionalInt converts a raw numeric field to a bound. Malformed or
// empty input means "unset", never an error.
func ParseOptionalInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseOptionalDate converts an ISO date string to a bound, treating
// malformed input as unset.
func ParseOptionalDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil
	}
	return &t
}
