package listproc

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// newCollator builds the collator used for the a-z / z-a orders. Collation
// is locale-aware, case-insensitive, stable and transitive.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// sortWords orders ws in place according to order. Sorting is stable, so
// equal keys keep their relative input order and repeated application is
// deterministic.
func (p *Processor) sortWords(ws []domain.Word, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].CreatedAt.Before(ws[j].CreatedAt)
		})
	case SortAlphaAsc:
		sort.SliceStable(ws, func(i, j int) bool {
			return p.coll.CompareString(ws[i].English, ws[j].English) < 0
		})
	case SortAlphaDesc:
		sort.SliceStable(ws, func(i, j int) bool {
			return p.coll.CompareString(ws[i].English, ws[j].English) > 0
		})
	case SortToeicHigh:
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].ToeicLevelOrZero() > ws[j].ToeicLevelOrZero()
		})
	case SortToeicLow:
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].ToeicLevelOrZero() < ws[j].ToeicLevelOrZero()
		})
	default: // SortNewest
		sort.SliceStable(ws, func(i, j int) bool {
			return ws[i].CreatedAt.After(ws[j].CreatedAt)
		})
	}
}
