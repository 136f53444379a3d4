package listproc

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// makeWords builds n words with strictly increasing CreatedAt and
// deterministic attributes.
func makeWords(n int) []domain.Word {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	words := make([]domain.Word, n)
	levels := []domain.ToeicLevel{domain.ToeicLevel400, domain.ToeicLevel600, domain.ToeicLevel730, domain.ToeicLevel860, domain.ToeicLevel990}
	cats := []domain.Category{domain.CategoryDaily, domain.CategoryBusiness, domain.CategoryAcademic}
	for i := range words {
		lvl := levels[i%len(levels)]
		words[i] = domain.Word{
			ID:           uuid.New(),
			English:      word(i),
			Meaning:      "意味" + word(i),
			Category:     cats[i%len(cats)],
			PartOfSpeech: []domain.PartOfSpeech{domain.PartOfSpeechNoun},
			ToeicLevel:   &lvl,
			Status:       domain.StatusBeginner,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
	}
	return words
}

// word produces distinct, alphabetically spreadable english forms.
func word(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	return string(letters[i%26]) + string(letters[(i/26)%26]) + "word"
}

func ids(ws []domain.Word) map[uuid.UUID]bool {
	m := make(map[uuid.UUID]bool, len(ws))
	for _, w := range ws {
		m[w.ID] = true
	}
	return m
}

func sameSet(t *testing.T, a, b []domain.Word) {
	t.Helper()
	if len(a) != len(b) {
		t.Fatalf("set sizes differ: %d vs %d", len(a), len(b))
	}
	bm := ids(b)
	for _, w := range a {
		if !bm[w.ID] {
			t.Fatalf("word %q missing from second set", w.English)
		}
	}
}

// Scenario: 150 words, newest order, range 1-100 frozen, then re-sorted a-z.
func TestApply_RangeFrozenUnderLiveSortChange(t *testing.T) {
	t.Parallel()

	words := makeWords(150)
	p := New()

	q := Query{Sort: SortNewest, IndexFrom: ptr(1), IndexTo: ptr(100)}
	first := p.Apply(words, q)

	if len(first) != 100 {
		t.Fatalf("len = %d, want 100", len(first))
	}
	// Newest first: position 0 is the last-created word.
	if first[0].ID != words[149].ID {
		t.Errorf("first word = %q, want most recent %q", first[0].English, words[149].English)
	}
	// Membership: the 100 most recently created.
	want := ids(words[50:])
	for _, w := range first {
		if !want[w.ID] {
			t.Fatalf("word %q is not among the 100 most recent", w.English)
		}
	}

	// Change live sort while range stays active: same membership, new order.
	q.Sort = SortAlphaAsc
	second := p.Apply(words, q)

	sameSet(t, first, second)
	for i := 1; i < len(second); i++ {
		if p.coll.CompareString(second[i-1].English, second[i].English) > 0 {
			t.Fatalf("display order not alphabetical at %d: %q > %q", i, second[i-1].English, second[i].English)
		}
	}
}

// Scenario: clearing both range bounds releases the frozen order.
func TestApply_RangeRelease(t *testing.T) {
	t.Parallel()

	words := makeWords(150)
	p := New()

	p.Apply(words, Query{Sort: SortNewest, IndexFrom: ptr(1), IndexTo: ptr(100)})
	if _, frozen := p.FrozenOrder(); !frozen {
		t.Fatal("expected frozen order while range active")
	}

	all := p.Apply(words, Query{Sort: SortAlphaAsc})
	if _, frozen := p.FrozenOrder(); frozen {
		t.Fatal("expected frozen order released after clearing both bounds")
	}
	if len(all) != 150 {
		t.Fatalf("len = %d, want 150", len(all))
	}
	for i := 1; i < len(all); i++ {
		if p.coll.CompareString(all[i-1].English, all[i].English) > 0 {
			t.Fatalf("not alphabetical at %d", i)
		}
	}

	// Re-activating the range freezes the new live order, not the old one.
	ranged := p.Apply(words, Query{Sort: SortAlphaAsc, IndexFrom: ptr(1), IndexTo: ptr(10)})
	sameSet(t, ranged, all[:10])
}

// Predicate filters commute: the same set comes out no matter which order
// they are applied in.
func TestApply_PredicateCommutativity(t *testing.T) {
	t.Parallel()

	words := makeWords(60)
	q := Query{
		Sort:     SortNewest,
		Search:   "word",
		Category: domain.CategoryDaily,
		ToeicMin: ptr(600),
		DateFrom: ptr(words[10].CreatedAt),
		DateTo:   ptr(words[55].CreatedAt),
	}

	full := New().Apply(words, q)

	// Apply each predicate individually, in a different order, intersecting
	// by hand; the combined result must be the same set.
	step := New().Apply(words, Query{Sort: SortNewest, ToeicMin: q.ToeicMin})
	step = New().Apply(step, Query{Sort: SortNewest, DateFrom: q.DateFrom, DateTo: q.DateTo})
	step = New().Apply(step, Query{Sort: SortNewest, Category: q.Category})
	step = New().Apply(step, Query{Sort: SortNewest, Search: q.Search})

	sameSet(t, full, step)
}

// Apply has no side effects and never mutates the source collection.
func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	words := makeWords(40)
	snapshot := make([]domain.Word, len(words))
	copy(snapshot, words)

	p := New()
	q := Query{Sort: SortToeicHigh, Search: "a", ToeicMin: ptr(600)}

	first := p.Apply(words, q)
	second := p.Apply(words, q)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("runs differ at %d", i)
		}
	}
	for i := range words {
		if words[i].ID != snapshot[i].ID || !words[i].CreatedAt.Equal(snapshot[i].CreatedAt) {
			t.Fatalf("source collection mutated at %d", i)
		}
	}
}

// Impossible ranges yield empty lists, not errors.
func TestApply_RangeBoundaries(t *testing.T) {
	t.Parallel()

	words := makeWords(10)

	tests := []struct {
		name     string
		from, to *int
		wantLen  int
	}{
		{"inverted range", ptr(1), ptr(0), 0},
		{"beyond length", ptr(500), ptr(1000), 0},
		{"clamped above", ptr(5), ptr(1000), 6},
		{"clamped below", ptr(-3), ptr(2), 2},
		{"open from", nil, ptr(3), 3},
		{"open to", ptr(8), nil, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := New().Apply(words, Query{Sort: SortNewest, IndexFrom: tt.from, IndexTo: tt.to})
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

// Absent toeicLevel is treated as 0 for the floor filter.
func TestApply_ToeicFloorExcludesUnsetLevel(t *testing.T) {
	t.Parallel()

	words := makeWords(3)
	words[1].ToeicLevel = nil

	got := New().Apply(words, Query{Sort: SortNewest, ToeicMin: ptr(600)})
	for _, w := range got {
		if w.ID == words[1].ID {
			t.Error("word without toeicLevel should be excluded by floor 600")
		}
	}
}

func TestApply_ToeicSortTreatsUnsetAsZero(t *testing.T) {
	t.Parallel()

	words := makeWords(5)
	words[2].ToeicLevel = nil

	got := New().Apply(words, Query{Sort: SortToeicLow})
	if got[0].ID != words[2].ID {
		t.Errorf("toeic-low should place unset level first, got %q", got[0].English)
	}
}

func TestApply_SearchSemantics(t *testing.T) {
	t.Parallel()

	words := []domain.Word{
		{ID: uuid.New(), English: "Pick Up", Meaning: "拾う"},
		{ID: uuid.New(), English: "run", Meaning: "走る"},
	}

	// English matches case-insensitively.
	got := New().Apply(words, Query{Sort: SortNewest, Search: "pick"})
	if len(got) != 1 || got[0].English != "Pick Up" {
		t.Fatalf("case-insensitive english search failed: %v", got)
	}

	// Meaning matches case-sensitively (and by exact substring).
	got = New().Apply(words, Query{Sort: SortNewest, Search: "走る"})
	if len(got) != 1 || got[0].English != "run" {
		t.Fatalf("meaning search failed: %v", got)
	}

	// Empty search matches everything.
	if got := New().Apply(words, Query{Sort: SortNewest}); len(got) != 2 {
		t.Fatalf("empty search should match all, got %d", len(got))
	}
}

func TestApply_DateBoundsInclusive(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.Local)
	words := []domain.Word{
		{ID: uuid.New(), English: "early", CreatedAt: day.Add(1 * time.Second)},
		{ID: uuid.New(), English: "late", CreatedAt: day.Add(23*time.Hour + 59*time.Minute)},
		{ID: uuid.New(), English: "nextday", CreatedAt: day.Add(25 * time.Hour)},
	}

	got := New().Apply(words, Query{Sort: SortOldest, DateFrom: &day, DateTo: &day})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (same-day words only)", len(got))
	}
	if got[0].English != "early" || got[1].English != "late" {
		t.Errorf("unexpected membership: %v, %v", got[0].English, got[1].English)
	}
}

func TestParseOptionalInt(t *testing.T) {
	t.Parallel()

	if got := ParseOptionalInt("100"); got == nil || *got != 100 {
		t.Errorf("ParseOptionalInt(100) = %v", got)
	}
	for _, bad := range []string{"", "  ", "abc", "1.5"} {
		if got := ParseOptionalInt(bad); got != nil {
			t.Errorf("ParseOptionalInt(%q) = %v, want nil", bad, *got)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	if got := ParseSortOrder("Z-A"); got != SortAlphaDesc {
		t.Errorf("ParseSortOrder(Z-A) = %q", got)
	}
	if got := ParseSortOrder("bogus"); got != SortNewest {
		t.Errorf("ParseSortOrder(bogus) = %q, want newest fallback", got)
	}
}
