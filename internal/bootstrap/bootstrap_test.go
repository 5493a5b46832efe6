package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"depflow/internal/bootstrap"
	"depflow/internal/platform/config"
)

func TestNewWiresSentenceAndDiagram(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	app, err := bootstrap.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	added, err := app.SentenceCLI.Add(ctx, "Ram ate a fruit", "rAma_1(Ram) 1 3:k1\nPala_1(fruit) 2 3:k2\nKA_yA_1(eat_1) 3 0:main")
	require.NoError(t, err)

	out, err := app.DiagramCLI.OpenSentence(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "eat (past)", out.Nodes[0].Label)

	out, err = app.DiagramCLI.Click(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 3)
	assert.Len(t, out.Edges, 2)
}

func TestCloseReleasesDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	app, err := bootstrap.New(cfg, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, app.Close())
	require.NoError(t, app.Close())

	_, err = app.SentenceCLI.Search(ctx, "", 0)
	assert.Error(t, err)
}
