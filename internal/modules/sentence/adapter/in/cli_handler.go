package in

import (
	"context"

	"depflow/internal/modules/sentence/dto"
	sentencein "depflow/internal/modules/sentence/port/in"
)

type CLIHandler struct {
	usecase sentencein.Usecase
}

func NewCLIHandler(usecase sentencein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, text, graphData string) (dto.SentenceOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Text: text, GraphData: graphData})
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Path: path})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.SentenceOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id int) (dto.SentenceDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Search(ctx context.Context, query string, limit int) ([]dto.SentenceOutput, error) {
	return h.usecase.Search(ctx, dto.SearchInput{Query: query, Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
