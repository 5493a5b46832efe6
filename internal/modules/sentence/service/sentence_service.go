package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"depflow/internal/modules/sentence/domain"
	sentenceout "depflow/internal/modules/sentence/port/out"
	"depflow/internal/platform/clock"
	"depflow/internal/platform/slug"
)

const slugMaxLen = 48

type SentenceService struct {
	clock     clock.Clock
	store     sentenceout.SentenceStore
	projector sentenceout.SentenceIndexProjector
	bundles   sentenceout.BundleReader
	logger    *zap.Logger
}

func NewSentenceService(
	clock clock.Clock,
	store sentenceout.SentenceStore,
	projector sentenceout.SentenceIndexProjector,
	bundles sentenceout.BundleReader,
	logger *zap.Logger,
) *SentenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SentenceService{clock: clock, store: store, projector: projector, bundles: bundles, logger: logger}
}

// Add assigns the next free id and writes the sentence note and projection.
func (s *SentenceService) Add(ctx context.Context, text, graphData string, questions []domain.Question) (domain.Sentence, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return domain.Sentence{}, err
	}
	nextID := 1
	for _, item := range existing {
		if item.ID >= nextID {
			nextID = item.ID + 1
		}
	}
	text = strings.TrimSpace(text)
	sentence := domain.Sentence{
		ID:        nextID,
		Text:      text,
		GraphData: strings.TrimSpace(graphData),
		Questions: questions,
		Slug:      slug.Make(text, slugMaxLen),
		AddedAt:   s.clock.Now(),
	}
	if err := sentence.Validate(); err != nil {
		return domain.Sentence{}, err
	}
	path, err := s.store.Save(ctx, sentence)
	if err != nil {
		return domain.Sentence{}, err
	}
	sentence.NotePath = path
	if err := s.projector.Upsert(ctx, sentence); err != nil {
		return domain.Sentence{}, err
	}
	s.logger.Info("sentence added",
		zap.Int("id", sentence.ID),
		zap.String("note", path),
		zap.Int("questions", len(questions)))
	return sentence, nil
}

// Import adds every sentence of a bundle in order and stops at the first
// invalid entry; entries added before it are kept.
func (s *SentenceService) Import(ctx context.Context, path string) ([]domain.Sentence, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("bundle path is required")
	}
	entries, err := s.bundles.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	added := make([]domain.Sentence, 0, len(entries))
	for i, entry := range entries {
		sentence, err := s.Add(ctx, entry.Text, entry.GraphData, entry.Questions)
		if err != nil {
			return added, fmt.Errorf("bundle entry %d: %w", i+1, err)
		}
		added = append(added, sentence)
	}
	s.logger.Info("bundle imported", zap.String("path", path), zap.Int("sentences", len(added)))
	return added, nil
}

func (s *SentenceService) List(ctx context.Context) ([]domain.Sentence, error) {
	return s.store.List(ctx)
}

func (s *SentenceService) Get(ctx context.Context, id int) (domain.Sentence, error) {
	return s.store.FindByID(ctx, id)
}

func (s *SentenceService) Search(ctx context.Context, query string, limit int) ([]domain.Summary, error) {
	return s.projector.Search(ctx, strings.TrimSpace(query), limit)
}

// Reindex rebuilds the SQLite projection from the workspace notes.
func (s *SentenceService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	sentences, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, sentence := range sentences {
		if err := s.projector.Upsert(ctx, sentence); err != nil {
			return err
		}
	}
	s.logger.Info("projection rebuilt", zap.Int("sentences", len(sentences)))
	return nil
}
