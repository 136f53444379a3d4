package vocabulary

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kotoba-app/kotoba-backend/internal/domain"
)

const (
	maxEnglishLen = 200
	maxTextLen    = 2000
	maxExamples   = 10
)

// ExampleInput holds one usage example.
type ExampleInput struct {
	Sentence    string
	Translation string
}

// CreateWordInput holds the parameters for creating a word.
type CreateWordInput struct {
	English      string
	Meaning      string
	CoreImage    string
	Category     domain.Category
	PartOfSpeech []domain.PartOfSpeech
	ToeicLevel   *int
	Examples     []ExampleInput
	Comment      string
}

// Validate checks all fields and collects all errors.
func (i *CreateWordInput) Validate() error {
	errs := validateWordFields(i.English, i.Meaning, i.Category, i.PartOfSpeech, i.ToeicLevel, i.Examples, i.Comment)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateWordInput holds the parameters for replacing a word's editable
// fields. Status and creation time are not editable here.
type UpdateWordInput struct {
	ID           uuid.UUID
	English      string
	Meaning      string
	CoreImage    string
	Category     domain.Category
	PartOfSpeech []domain.PartOfSpeech
	ToeicLevel   *int
	Examples     []ExampleInput
	Comment      string
}

// Validate checks all fields and collects all errors.
func (i *UpdateWordInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateWordFields(i.English, i.Meaning, i.Category, i.PartOfSpeech, i.ToeicLevel, i.Examples, i.Comment)...)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GenerateInput holds the parameters for bulk word generation.
type GenerateInput struct {
	Words []string
}

// Validate checks the word list against the configured job limit.
func (i *GenerateInput) Validate(maxWords int) error {
	var errs []domain.FieldError

	nonEmpty := 0
	for _, w := range i.Words {
		if strings.TrimSpace(w) != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		errs = append(errs, domain.FieldError{Field: "words", Message: "required"})
	}
	if nonEmpty > maxWords {
		errs = append(errs, domain.FieldError{Field: "words", Message: "too many"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateWordFields(english, meaning string, category domain.Category, pos []domain.PartOfSpeech,
	toeic *int, examples []ExampleInput, comment string) []domain.FieldError {

	var errs []domain.FieldError

	if strings.TrimSpace(english) == "" {
		errs = append(errs, domain.FieldError{Field: "english", Message: "required"})
	} else if len(english) > maxEnglishLen {
		errs = append(errs, domain.FieldError{Field: "english", Message: "too long"})
	}
	if len(meaning) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "meaning", Message: "too long"})
	}
	if category != "" && !category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "unknown value"})
	}
	for _, p := range pos {
		if !p.IsValid() {
			errs = append(errs, domain.FieldError{Field: "part_of_speech", Message: "unknown value"})
			break
		}
	}
	if toeic != nil && !domain.ToeicLevel(*toeic).IsValid() {
		errs = append(errs, domain.FieldError{Field: "toeic_level", Message: "not on the TOEIC ladder"})
	}
	if len(examples) > maxExamples {
		errs = append(errs, domain.FieldError{Field: "examples", Message: "too many"})
	}
	if len(comment) > maxTextLen {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "too long"})
	}

	return errs
}
