package usecase

import (
	"context"
	"fmt"

	"depflow/internal/modules/diagram/domain"
	"depflow/internal/modules/diagram/dto"
	diagramin "depflow/internal/modules/diagram/port/in"
	"depflow/internal/modules/diagram/service"
	sentencein "depflow/internal/modules/sentence/port/in"
)

type Interactor struct {
	svc       *service.DiagramService
	sentences sentencein.Usecase
}

func NewInteractor(svc *service.DiagramService, sentences sentencein.Usecase) diagramin.Usecase {
	return &Interactor{svc: svc, sentences: sentences}
}

func (i *Interactor) Parse(_ context.Context, input diagramin.ParseInput) (dto.IndexOutput, error) {
	index := domain.Parse(input.Text)
	nodes := make([]dto.NodeOutput, 0, len(index.Order))
	for _, id := range index.Order {
		node := index.Nodes[id]
		nodes = append(nodes, mapNode(node, false, len(index.ChildEdges(id)) > 0))
	}
	return dto.IndexOutput{
		RootID:   index.RootID,
		Empty:    index.Empty(),
		Nodes:    nodes,
		Edges:    mapEdges(index.Edges),
		Dangling: index.Dangling,
	}, nil
}

func (i *Interactor) OpenText(ctx context.Context, input diagramin.OpenTextInput) (dto.DiagramOutput, error) {
	i.svc.Open(input.Text, service.Origin{SentenceID: input.SentenceID, Sentence: input.Sentence})
	return i.Current(ctx)
}

func (i *Interactor) OpenSentence(ctx context.Context, input diagramin.OpenSentenceInput) (dto.DiagramOutput, error) {
	if i.sentences == nil {
		return dto.DiagramOutput{}, fmt.Errorf("sentence library is not configured")
	}
	sentence, err := i.sentences.Get(ctx, input.SentenceID)
	if err != nil {
		return dto.DiagramOutput{}, err
	}
	return i.OpenText(ctx, diagramin.OpenTextInput{
		Text:       sentence.GraphData,
		SentenceID: sentence.ID,
		Sentence:   sentence.Text,
	})
}

func (i *Interactor) Toggle(ctx context.Context, input diagramin.ToggleInput) (dto.DiagramOutput, error) {
	if _, err := i.svc.Toggle(input.NodeID); err != nil {
		return dto.DiagramOutput{}, err
	}
	return i.Current(ctx)
}

func (i *Interactor) ExpandAll(ctx context.Context) (dto.DiagramOutput, error) {
	if _, err := i.svc.ExpandAll(); err != nil {
		return dto.DiagramOutput{}, err
	}
	return i.Current(ctx)
}

func (i *Interactor) Reset(ctx context.Context) (dto.DiagramOutput, error) {
	if err := i.svc.Reset(); err != nil {
		return dto.DiagramOutput{}, err
	}
	return i.Current(ctx)
}

func (i *Interactor) Current(_ context.Context) (dto.DiagramOutput, error) {
	subset, origin, err := i.svc.Current()
	if err != nil {
		return dto.DiagramOutput{}, err
	}
	index := subset.Index()
	visible := subset.Nodes()
	nodes := make([]dto.NodeOutput, 0, len(visible))
	for _, node := range visible {
		nodes = append(nodes, mapNode(node, subset.IsExpanded(node.ID), subset.HasChildren(node.ID)))
	}
	return dto.DiagramOutput{
		SentenceID: origin.SentenceID,
		Sentence:   origin.Sentence,
		RootID:     index.RootID,
		Empty:      index.Empty(),
		TotalNodes: len(index.Order),
		Nodes:      nodes,
		Edges:      mapEdges(subset.Edges()),
		Dangling:   index.Dangling,
	}, nil
}

func mapNode(node domain.Node, expanded, hasChildren bool) dto.NodeOutput {
	return dto.NodeOutput{
		ID:          node.ID,
		Label:       node.Label,
		Color:       string(node.Color),
		Head:        node.Head,
		Relation:    node.Relation,
		RawToken:    node.RawToken,
		Expanded:    expanded,
		HasChildren: hasChildren,
	}
}

func mapEdges(edges []domain.Edge) []dto.EdgeOutput {
	out := make([]dto.EdgeOutput, 0, len(edges))
	for _, edge := range edges {
		out = append(out, dto.EdgeOutput{
			ID:       edge.ID,
			From:     edge.From,
			To:       edge.To,
			Relation: edge.Relation,
			Label:    edge.Label,
		})
	}
	return out
}
