package in

import (
	"context"

	"depflow/internal/modules/diagram/dto"
	diagramin "depflow/internal/modules/diagram/port/in"
)

type CLIHandler struct {
	usecase diagramin.Usecase
}

func NewCLIHandler(usecase diagramin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Parse(ctx context.Context, text string) (dto.IndexOutput, error) {
	return h.usecase.Parse(ctx, diagramin.ParseInput{Text: text})
}

func (h CLIHandler) OpenText(ctx context.Context, text string) (dto.DiagramOutput, error) {
	return h.usecase.OpenText(ctx, diagramin.OpenTextInput{Text: text})
}

func (h CLIHandler) OpenSentence(ctx context.Context, id int) (dto.DiagramOutput, error) {
	return h.usecase.OpenSentence(ctx, diagramin.OpenSentenceInput{SentenceID: id})
}

// Click toggles each node in order, the way a viewer clicking through the
// diagram would, and returns the final visible state.
func (h CLIHandler) Click(ctx context.Context, ids ...string) (dto.DiagramOutput, error) {
	for _, id := range ids {
		if _, err := h.usecase.Toggle(ctx, diagramin.ToggleInput{NodeID: id}); err != nil {
			return dto.DiagramOutput{}, err
		}
	}
	return h.usecase.Current(ctx)
}

func (h CLIHandler) ExpandAll(ctx context.Context) (dto.DiagramOutput, error) {
	return h.usecase.ExpandAll(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.DiagramOutput, error) {
	return h.usecase.Reset(ctx)
}
