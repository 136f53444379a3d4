package generation

import (
	"strings"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

// Verdict is the graded outcome of one quiz answer.
type Verdict int

const (
	// VerdictNone means the reply carried no recognizable marker; the
	// answer is treated as conversational and no progress is recorded.
	VerdictNone Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// ParseVerdict reads the grading convention out of an assistant reply: the
// leading token is the verdict marker, and the first bracketed [...] token
// names the target word. Both are matched case-insensitively. Replies that
// follow neither convention yield VerdictNone and an empty word.
func ParseVerdict(reply string) (Verdict, string) {
	verdict := VerdictNone

	trimmed := strings.TrimSpace(reply)
	first := trimmed
	if i := strings.IndexAny(trimmed, " \t\n.,:;!["); i != -1 {
		first = trimmed[:i]
	}
	switch strings.ToUpper(first) {
	case "CORRECT":
		verdict = VerdictCorrect
	case "INCORRECT":
		verdict = VerdictIncorrect
	}

	return verdict, bracketedWord(trimmed)
}

// MatchWord finds the word whose English form equals name, ignoring case
// and surrounding whitespace. Returns nil when nothing matches.
func MatchWord(words []domain.Word, name string) *domain.Word {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}
	for i := range words {
		if strings.ToLower(strings.TrimSpace(words[i].English)) == want {
			return &words[i]
		}
	}
	return nil
}

func bracketedWord(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}
	end := strings.Index(s[start:], "]")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(s[start+1 : start+end])
}
