package domain

// Status represents the user's proficiency with a word. It forms a linear
// progression and changes only through review actions.
type Status string

const (
	StatusBeginner Status = "BEGINNER"
	StatusTraining Status = "TRAINING"
	StatusMastered Status = "MASTERED"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusBeginner, StatusTraining, StatusMastered:
		return true
	}
	return false
}

// Promote moves the status one step toward Mastered, clamped at the end.
func (s Status) Promote() Status {
	switch s {
	case StatusBeginner:
		return StatusTraining
	case StatusTraining:
		return StatusMastered
	default:
		return StatusMastered
	}
}

// Demote moves the status one step back toward Beginner, clamped at the start.
func (s Status) Demote() Status {
	switch s {
	case StatusMastered:
		return StatusTraining
	default:
		return StatusBeginner
	}
}

// Category is the fixed set of word groupings.
type Category string

const (
	CategoryDaily    Category = "DAILY"
	CategoryBusiness Category = "BUSINESS"
	CategoryAcademic Category = "ACADEMIC"
	CategoryTravel   Category = "TRAVEL"
	CategoryIT       Category = "IT"
	CategoryOther    Category = "OTHER"
)

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	switch c {
	case CategoryDaily, CategoryBusiness, CategoryAcademic, CategoryTravel, CategoryIT, CategoryOther:
		return true
	}
	return false
}

// PartOfSpeech represents the grammatical category of a word.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechIdiom        PartOfSpeech = "IDIOM"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechIdiom, PartOfSpeechOther:
		return true
	}
	return false
}

// ToeicLevel is a difficulty score on the fixed TOEIC ladder.
type ToeicLevel int

const (
	ToeicLevel400 ToeicLevel = 400
	ToeicLevel600 ToeicLevel = 600
	ToeicLevel730 ToeicLevel = 730
	ToeicLevel860 ToeicLevel = 860
	ToeicLevel990 ToeicLevel = 990
)

func (l ToeicLevel) IsValid() bool {
	switch l {
	case ToeicLevel400, ToeicLevel600, ToeicLevel730, ToeicLevel860, ToeicLevel990:
		return true
	}
	return false
}

// ReviewAction is the user's self-assessment during a review.
type ReviewAction string

const (
	ReviewActionRemembered ReviewAction = "REMEMBERED"
	ReviewActionForgot     ReviewAction = "FORGOT"
)

func (a ReviewAction) String() string { return string(a) }

func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewActionRemembered, ReviewActionForgot:
		return true
	}
	return false
}
