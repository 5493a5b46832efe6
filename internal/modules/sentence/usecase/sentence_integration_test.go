package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sentenceout "depflow/internal/modules/sentence/adapter/out"
	"depflow/internal/modules/sentence/dto"
	sentencein "depflow/internal/modules/sentence/port/in"
	"depflow/internal/modules/sentence/service"
	"depflow/internal/modules/sentence/usecase"
	"depflow/internal/platform/clock"
	apperrors "depflow/internal/platform/errors"
)

const woodcutterGraph = `<sent_id=1>
lakadZahArA_1(woodcutter_1) 1 3:k1
jaMgala_1(forest_1) 2 3:k7p
jA_rahA_hE_1 3 0:main
</sent_id>`

const bundle = `sentences:
  - sentence: The woodcutter is going to the forest
    graph_data: |
      lakadZahArA_1(woodcutter_1) 1 3:k1
      jaMgala_1(forest_1) 2 3:k7p
      jA_rahA_hE_1 3 0:main
    questions:
      - q: Who is going?
        options: [woodcutter, forest]
        answer: woodcutter
  - sentence: Ram ate a fruit
    graph_data: |
      rAma_1(Ram) 1 3:k1
      Pala_1(fruit) 2 3:k2
      KA_yA_1(eat_1) 3 0:main
`

func newUsecase(t *testing.T, workspace string) sentencein.Usecase {
	t.Helper()
	projector, err := sentenceout.NewSQLiteSentenceProjector(filepath.Join(workspace, ".depflow", "depflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = projector.Close() })
	svc := service.NewSentenceService(
		clock.Fixed{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		sentenceout.NewVaultSentenceStore(workspace),
		projector,
		sentenceout.NewYAMLBundleReader(),
		zap.NewNop(),
	)
	return usecase.NewInteractor(svc)
}

func TestAddGetListAndReindex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	workspace := t.TempDir()
	uc := newUsecase(t, workspace)

	out, err := uc.Add(ctx, dto.AddInput{
		Text:      "The woodcutter is going to the forest",
		GraphData: woodcutterGraph,
		Questions: []dto.QuestionInput{{Prompt: "Where?", Options: []string{"forest", "house"}, Answer: "forest"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, 1, out.QuestionCount)
	assert.Equal(t, filepath.Join(workspace, "sentences", "0001-the-woodcutter-is-going-to-the-forest.md"), out.NotePath)

	content, err := os.ReadFile(out.NotePath)
	require.NoError(t, err)
	note := string(content)
	assert.Contains(t, note, "schema_version: 1")
	assert.Contains(t, note, "2026-03-01T09:00:00Z")
	assert.Contains(t, note, "```usr\n<sent_id=1>\n")

	second, err := uc.Add(ctx, dto.AddInput{Text: "Ram ate a fruit", GraphData: "KA_yA_1(eat_1) 1 0:main"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	detail, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, woodcutterGraph, detail.GraphData)
	require.Len(t, detail.Questions, 1)
	assert.Equal(t, "forest", detail.Questions[0].Answer)
	assert.True(t, detail.AddedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []int{1, 2}, []int{list[0].ID, list[1].ID})

	// A fresh database file only learns about the notes through Reindex.
	require.NoError(t, os.Remove(filepath.Join(workspace, ".depflow", "depflow.db")))
	fresh := newUsecase(t, workspace)
	hits, err := fresh.Search(ctx, dto.SearchInput{Query: "FRUIT"})
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, fresh.Reindex(ctx, dto.ReindexInput{}))
	hits, err = fresh.Search(ctx, dto.SearchInput{Query: "FRUIT"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].ID)
}

func TestAddRejectsInvalidSentences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t, t.TempDir())

	_, err := uc.Add(ctx, dto.AddInput{Text: "  ", GraphData: woodcutterGraph})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "blank text: %v", err)

	_, err = uc.Add(ctx, dto.AddInput{Text: "no graph"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "missing graph: %v", err)

	_, err = uc.Add(ctx, dto.AddInput{
		Text:      "bad answer",
		GraphData: woodcutterGraph,
		Questions: []dto.QuestionInput{{Prompt: "Who?", Options: []string{"a", "b"}, Answer: "c"}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput), "answer outside options: %v", err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetUnknownSentence(t *testing.T) {
	t.Parallel()
	_, err := newUsecase(t, t.TempDir()).Get(context.Background(), 42)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)
}

func TestImportBundle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	workspace := t.TempDir()
	path := filepath.Join(workspace, "bundle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bundle), 0o644))
	uc := newUsecase(t, workspace)

	out, err := uc.Import(ctx, dto.ImportInput{Path: path})
	require.NoError(t, err)
	require.Len(t, out.Added, 2)
	assert.Equal(t, "Ram ate a fruit", out.Added[1].Text)

	detail, err := uc.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(detail.GraphData, "KA_yA_1(eat_1) 3 0:main"))

	hits, err := uc.Search(ctx, dto.SearchInput{Query: "woodcutter"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].QuestionCount)
}

func TestImportStopsAtFirstInvalidEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	workspace := t.TempDir()
	path := filepath.Join(workspace, "bundle.yaml")
	broken := bundle + "  - sentence: missing graph\n  - sentence: never reached\n    graph_data: x 1 0:main\n"
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))
	uc := newUsecase(t, workspace)

	out, err := uc.Import(ctx, dto.ImportInput{Path: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bundle entry 3")
	assert.Len(t, out.Added, 2)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
