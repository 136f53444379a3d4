// Package listproc derives the displayed, ordered, filtered subset of words
// from the full in-memory collection plus the current query state.
//
// The one subtle contract is the positional range filter: "positions 1..100"
// must refer to a fixed base ordering, not whatever the live sort order
// happens to be, or toggling sort while a range is active would silently
// change which words qualify. The processor therefore freezes the sort order
// in effect when a range is first activated, keeps slicing by that frozen
// order until both range bounds are cleared, and re-sorts only the filtered
// result by the live order for display.
package listproc

import (
	"strings"
	"time"

	"golang.org/x/text/collate"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// Processor applies a Query to a word collection. It is stateful only for
// the frozen range order; everything else is a pure function of the inputs.
// It is not safe for concurrent use.
type Processor struct {
	coll *collate.Collator

	frozen       SortOrder
	frozenActive bool
}

// New creates a Processor.
func New() *Processor {
	return &Processor{coll: newCollator()}
}

// FrozenOrder exposes the currently frozen sort order, if any. Used by the
// transport layer to report list state back to the client.
func (p *Processor) FrozenOrder() (SortOrder, bool) {
	return p.frozen, p.frozenActive
}

// Apply produces the ordered subset of words to display. The input slice is
// never mutated and the returned words are the same records, not copies.
// Apply never fails: malformed query fields have already been reduced to
// "unset" by the parse helpers, and impossible ranges yield an empty list.
func (p *Processor) Apply(words []domain.Word, q Query) []domain.Word {
	live := q.Sort
	if !live.IsValid() {
		live = SortNewest
	}

	// Freeze the base order on range activation, release when both bounds
	// are gone. While frozen, later sort changes affect display order only.
	if q.RangeActive() {
		if !p.frozenActive {
			p.frozen = live
			p.frozenActive = true
		}
	} else {
		p.frozenActive = false
	}

	base := live
	if p.frozenActive {
		base = p.frozen
	}

	// Step 1: base-order the entire collection on a copy.
	out := make([]domain.Word, len(words))
	copy(out, words)
	p.sortWords(out, base)

	// Step 2: positional slice over the base order.
	if q.RangeActive() {
		out = sliceRange(out, q.IndexFrom, q.IndexTo)
	}

	// Step 3: independent predicate filters, AND-composed.
	out = filterWords(out, q)

	// Step 4: re-sort by the live order for display. Membership was fixed
	// by the frozen-order slice above.
	if p.frozenActive && live != base {
		p.sortWords(out, live)
	}

	return out
}

// sliceRange applies a 1-based inclusive [from, to] range, clamping from
// below at the first position and above at the list length. An empty or
// inverted range yields an empty list, not an error.
func sliceRange(ws []domain.Word, from, to *int) []domain.Word {
	lo := 1
	if from != nil {
		lo = *from
	}
	hi := len(ws)
	if to != nil {
		hi = *to
	}

	if lo < 1 {
		lo = 1
	}
	if hi > len(ws) {
		hi = len(ws)
	}
	if lo > hi || lo > len(ws) {
		return []domain.Word{}
	}
	return ws[lo-1 : hi]
}

func filterWords(ws []domain.Word, q Query) []domain.Word {
	out := make([]domain.Word, 0, len(ws))
	for _, w := range ws {
		if matches(&w, q) {
			out = append(out, w)
		}
	}
	return out
}

// matches evaluates every predicate filter against one word. The predicates
// are independent, so evaluation order does not affect the result.
func matches(w *domain.Word, q Query) bool {
	if !matchesSearch(w, q.Search) {
		return false
	}
	if q.Category != "" && w.Category != q.Category {
		return false
	}
	if q.Status != "" && w.Status != q.Status {
		return false
	}
	if q.PartOfSpeech != "" && !w.HasPartOfSpeech(q.PartOfSpeech) {
		return false
	}
	if q.ToeicMin != nil && w.ToeicLevelOrZero() < *q.ToeicMin {
		return false
	}
	if q.DateFrom != nil && w.CreatedAt.Before(dayStart(*q.DateFrom)) {
		return false
	}
	if q.DateTo != nil && w.CreatedAt.After(dayEnd(*q.DateTo)) {
		return false
	}
	return true
}

// matchesSearch matches the term case-insensitively against English and
// case-sensitively against Meaning. An empty term matches everything.
func matchesSearch(w *domain.Word, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(w.English), strings.ToLower(term)) {
		return true
	}
	return strings.Contains(w.Meaning, term)
}

// dayStart truncates t to 00:00:00.000 in its own location.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayEnd extends t to 23:59:59.999 in its own location.
func dayEnd(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
