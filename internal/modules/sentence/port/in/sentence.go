package in

import (
	"context"

	"depflow/internal/modules/sentence/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.SentenceOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	List(ctx context.Context) ([]dto.SentenceOutput, error)
	Get(ctx context.Context, id int) (dto.SentenceDetailOutput, error)
	Search(ctx context.Context, input dto.SearchInput) ([]dto.SentenceOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
