package in

import (
	"context"

	"depflow/internal/modules/diagram/dto"
)

type ParseInput struct {
	Text string
}

// OpenTextInput opens graph data directly. SentenceID and Sentence are
// optional and only label the result.
type OpenTextInput struct {
	Text       string
	SentenceID int
	Sentence   string
}

type OpenSentenceInput struct {
	SentenceID int
}

type ToggleInput struct {
	NodeID string
}

type Usecase interface {
	Parse(ctx context.Context, input ParseInput) (dto.IndexOutput, error)
	OpenText(ctx context.Context, input OpenTextInput) (dto.DiagramOutput, error)
	OpenSentence(ctx context.Context, input OpenSentenceInput) (dto.DiagramOutput, error)
	Toggle(ctx context.Context, input ToggleInput) (dto.DiagramOutput, error)
	ExpandAll(ctx context.Context) (dto.DiagramOutput, error)
	Reset(ctx context.Context) (dto.DiagramOutput, error)
	Current(ctx context.Context) (dto.DiagramOutput, error)
}
