package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "depflow/internal/platform/errors"
)

const SchemaVersion = 1

// GraphFence tags the fenced block that holds the graph data in a note.
const GraphFence = "usr"

type Question struct {
	Prompt  string   `yaml:"q" validate:"required"`
	Options []string `yaml:"options" validate:"min=2,dive,required"`
	Answer  string   `yaml:"answer" validate:"required"`
}

type Sentence struct {
	ID        int        `validate:"gt=0"`
	Text      string     `validate:"required"`
	GraphData string     `validate:"required"`
	Questions []Question `validate:"dive"`
	Slug      string     `validate:"required"`
	NotePath  string
	AddedAt   time.Time
}

type Summary struct {
	ID            int
	Text          string
	QuestionCount int
}

var validate = validator.New()

func (s Sentence) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	for i, q := range s.Questions {
		if !slices.Contains(q.Options, q.Answer) {
			return fmt.Errorf("%w: question %d answer %q is not one of its options", apperrors.ErrInvalidInput, i+1, q.Answer)
		}
	}
	return nil
}

func (s Sentence) Summary() Summary {
	return Summary{ID: s.ID, Text: s.Text, QuestionCount: len(s.Questions)}
}
