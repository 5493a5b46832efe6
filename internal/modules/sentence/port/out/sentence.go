package out

import (
	"context"

	"depflow/internal/modules/sentence/domain"
)

type SentenceStore interface {
	Save(ctx context.Context, sentence domain.Sentence) (string, error)
	FindByID(ctx context.Context, id int) (domain.Sentence, error)
	List(ctx context.Context) ([]domain.Sentence, error)
}

type SentenceIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, sentence domain.Sentence) error
	Search(ctx context.Context, query string, limit int) ([]domain.Summary, error)
}

// BundleReader loads sentences for bulk import. Returned sentences carry no
// ID, slug or timestamps yet.
type BundleReader interface {
	Read(ctx context.Context, path string) ([]domain.Sentence, error)
}
