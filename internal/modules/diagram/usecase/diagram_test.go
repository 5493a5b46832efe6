package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"depflow/internal/modules/diagram/domain"
	diagramin "depflow/internal/modules/diagram/port/in"
	"depflow/internal/modules/diagram/service"
	"depflow/internal/modules/diagram/usecase"
	sentencedto "depflow/internal/modules/sentence/dto"
	apperrors "depflow/internal/platform/errors"
)

const woodcutter = `<sent_id=1>
lakadZahArA_1(woodcutter_1) 1 3:k1
jaMgala_1(forest_1) 2 3:k7p
jA_rahA_hE_1 3 0:main
</sent_id>`

type fakeSentences struct {
	byID map[int]sentencedto.SentenceDetailOutput
}

func (f fakeSentences) Add(context.Context, sentencedto.AddInput) (sentencedto.SentenceOutput, error) {
	return sentencedto.SentenceOutput{}, nil
}

func (f fakeSentences) Import(context.Context, sentencedto.ImportInput) (sentencedto.ImportOutput, error) {
	return sentencedto.ImportOutput{}, nil
}

func (f fakeSentences) List(context.Context) ([]sentencedto.SentenceOutput, error) {
	return nil, nil
}

func (f fakeSentences) Get(_ context.Context, id int) (sentencedto.SentenceDetailOutput, error) {
	out, ok := f.byID[id]
	if !ok {
		return sentencedto.SentenceDetailOutput{}, fmt.Errorf("sentence %d: %w", id, apperrors.ErrNotFound)
	}
	return out, nil
}

func (f fakeSentences) Search(context.Context, sentencedto.SearchInput) ([]sentencedto.SentenceOutput, error) {
	return nil, nil
}

func (f fakeSentences) Reindex(context.Context, sentencedto.ReindexInput) error {
	return nil
}

type recordingListener struct {
	visible [][]string
}

func (r *recordingListener) Changed(nodes []domain.Node, _ []domain.Edge) {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	r.visible = append(r.visible, ids)
}

func newInteractor(listener *recordingListener) diagramin.Usecase {
	sentences := fakeSentences{byID: map[int]sentencedto.SentenceDetailOutput{
		7: {ID: 7, Text: "The woodcutter is going to the forest", GraphData: woodcutter},
	}}
	return usecase.NewInteractor(service.NewDiagramService(listener, zap.NewNop()), sentences)
}

func TestOpenSentenceShowsRootOnly(t *testing.T) {
	t.Parallel()
	uc := newInteractor(&recordingListener{})

	out, err := uc.OpenSentence(context.Background(), diagramin.OpenSentenceInput{SentenceID: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, out.SentenceID)
	assert.Equal(t, "The woodcutter is going to the forest", out.Sentence)
	assert.Equal(t, "3", out.RootID)
	assert.Equal(t, 3, out.TotalNodes)
	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "jA (present continuous)", out.Nodes[0].Label)
	assert.Equal(t, "root", out.Nodes[0].Color)
	assert.True(t, out.Nodes[0].HasChildren)
	assert.False(t, out.Nodes[0].Expanded)
	assert.Empty(t, out.Edges)
}

func TestClickExpandsAndCollapses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	listener := &recordingListener{}
	uc := newInteractor(listener)
	_, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: woodcutter})
	require.NoError(t, err)

	out, err := uc.Toggle(ctx, diagramin.ToggleInput{NodeID: "3"})
	require.NoError(t, err)
	require.Len(t, out.Nodes, 3)
	assert.True(t, out.Nodes[2].Expanded)
	assert.Equal(t, "woodcutter", out.Nodes[0].Label)
	require.Len(t, out.Edges, 2)
	assert.Equal(t, "3->1", out.Edges[0].ID)
	assert.Equal(t, "Who/What", out.Edges[0].Label)
	assert.Equal(t, "Where", out.Edges[1].Label)

	out, err = uc.Toggle(ctx, diagramin.ToggleInput{NodeID: "3"})
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 1)
	assert.Empty(t, out.Edges)

	// open, expand, collapse
	assert.Equal(t, [][]string{{"3"}, {"1", "2", "3"}, {"3"}}, listener.visible)
}

func TestUnknownNodeClickIsNoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	listener := &recordingListener{}
	uc := newInteractor(listener)
	before, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: woodcutter})
	require.NoError(t, err)

	after, err := uc.Toggle(ctx, diagramin.ToggleInput{NodeID: "99"})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, listener.visible, 1)
}

func TestExpandAllAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&recordingListener{})
	_, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: woodcutter})
	require.NoError(t, err)

	out, err := uc.ExpandAll(ctx)
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 3)

	out, err = uc.Reset(ctx)
	require.NoError(t, err)
	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "3", out.Nodes[0].ID)
}

func TestRootlessTextIsEmptyNotError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&recordingListener{})

	out, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: "rAma_1 1 2:k1\n"})
	require.NoError(t, err)
	assert.True(t, out.Empty)
	assert.Empty(t, out.Nodes)

	out, err = uc.Toggle(ctx, diagramin.ToggleInput{NodeID: "1"})
	require.NoError(t, err)
	assert.Empty(t, out.Nodes)
}

func TestOperationsBeforeOpenFail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&recordingListener{})

	_, err := uc.Toggle(ctx, diagramin.ToggleInput{NodeID: "1"})
	assert.True(t, errors.Is(err, apperrors.ErrNoDiagram))
	_, err = uc.Current(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNoDiagram))
	_, err = uc.Reset(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNoDiagram))
}

func TestOpenUnknownSentence(t *testing.T) {
	t.Parallel()
	_, err := newInteractor(&recordingListener{}).OpenSentence(context.Background(), diagramin.OpenSentenceInput{SentenceID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestOpeningNewTextDiscardsPreviousState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(&recordingListener{})
	_, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: woodcutter})
	require.NoError(t, err)
	_, err = uc.ExpandAll(ctx)
	require.NoError(t, err)

	out, err := uc.OpenText(ctx, diagramin.OpenTextInput{Text: "rAma_1 1 0:main\ngayA_2 2 1:k1"})
	require.NoError(t, err)
	require.Len(t, out.Nodes, 1)
	assert.Equal(t, "1", out.RootID)
	assert.Zero(t, out.SentenceID)
}

func TestParseReturnsWholeIndex(t *testing.T) {
	t.Parallel()
	out, err := newInteractor(&recordingListener{}).Parse(context.Background(), diagramin.ParseInput{Text: woodcutter + "\nGara_1 4 9:k7p"})
	require.NoError(t, err)
	assert.Equal(t, "3", out.RootID)
	assert.False(t, out.Empty)
	require.Len(t, out.Nodes, 4)
	assert.Len(t, out.Edges, 2)
	assert.Equal(t, []string{"4"}, out.Dangling)
	assert.False(t, out.Nodes[0].HasChildren)
	assert.True(t, out.Nodes[2].HasChildren)
}
