package usecase

import (
	"context"

	"depflow/internal/modules/sentence/domain"
	"depflow/internal/modules/sentence/dto"
	sentencein "depflow/internal/modules/sentence/port/in"
	"depflow/internal/modules/sentence/service"
)

type Interactor struct {
	svc *service.SentenceService
}

func NewInteractor(svc *service.SentenceService) sentencein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) (dto.SentenceOutput, error) {
	questions := make([]domain.Question, 0, len(input.Questions))
	for _, q := range input.Questions {
		questions = append(questions, domain.Question{Prompt: q.Prompt, Options: q.Options, Answer: q.Answer})
	}
	sentence, err := i.svc.Add(ctx, input.Text, input.GraphData, questions)
	if err != nil {
		return dto.SentenceOutput{}, err
	}
	return toOutput(sentence), nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	added, err := i.svc.Import(ctx, input.Path)
	out := dto.ImportOutput{Added: make([]dto.SentenceOutput, 0, len(added))}
	for _, sentence := range added {
		out.Added = append(out.Added, toOutput(sentence))
	}
	return out, err
}

func (i *Interactor) List(ctx context.Context) ([]dto.SentenceOutput, error) {
	sentences, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SentenceOutput, 0, len(sentences))
	for _, sentence := range sentences {
		out = append(out, toOutput(sentence))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id int) (dto.SentenceDetailOutput, error) {
	sentence, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SentenceDetailOutput{}, err
	}
	questions := make([]dto.QuestionOutput, 0, len(sentence.Questions))
	for _, q := range sentence.Questions {
		questions = append(questions, dto.QuestionOutput{Prompt: q.Prompt, Options: q.Options, Answer: q.Answer})
	}
	return dto.SentenceDetailOutput{
		ID:        sentence.ID,
		Text:      sentence.Text,
		GraphData: sentence.GraphData,
		NotePath:  sentence.NotePath,
		AddedAt:   sentence.AddedAt,
		Questions: questions,
	}, nil
}

func (i *Interactor) Search(ctx context.Context, input dto.SearchInput) ([]dto.SentenceOutput, error) {
	summaries, err := i.svc.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SentenceOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.SentenceOutput{ID: s.ID, Text: s.Text, QuestionCount: s.QuestionCount})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}

func toOutput(sentence domain.Sentence) dto.SentenceOutput {
	return dto.SentenceOutput{
		ID:            sentence.ID,
		Text:          sentence.Text,
		QuestionCount: len(sentence.Questions),
		NotePath:      sentence.NotePath,
	}
}
