package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graph = `<sent_id=1>
rAma_1(Ram) 1 3:k1
Pala_1(fruit) 2 3:k2
KA_yA_1(eat_1) 3 0:main
</sent_id>
`

func execute(t *testing.T, workspace, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--workspace", workspace, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseFromStdin(t *testing.T) {
	t.Parallel()
	out, err := execute(t, t.TempDir(), graph, "parse", "-")
	require.NoError(t, err)

	var index struct {
		RootID string `json:"root_id"`
		Nodes  []struct {
			Label string `json:"label"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &index))
	assert.Equal(t, "3", index.RootID)
	require.Len(t, index.Nodes, 3)
	assert.Equal(t, "eat (past)", index.Nodes[2].Label)
}

func TestRenderFileWithClicks(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	path := filepath.Join(workspace, "graph.usr")
	require.NoError(t, os.WriteFile(path, []byte(graph), 0o644))

	out, err := execute(t, workspace, "", "render", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "eat (past) [3] ▸")

	out, err = execute(t, workspace, "", "render", "--file", path, "--click", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Who/What → Ram [1]")
	assert.Contains(t, out, "Whom/What → fruit [2]")

	out, err = execute(t, workspace, "", "render", "--file", path, "--click", "3,3")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ram")
}

func TestSentenceLifecycle(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()

	out, err := execute(t, workspace, graph, "sentence", "add", "--text", "Ram ate a fruit", "--graph-file", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "added #1")

	out, err = execute(t, workspace, "", "sentence", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1\t0 questions\tRam ate a fruit")

	out, err = execute(t, workspace, "", "sentence", "search", "fruit")
	require.NoError(t, err)
	assert.Contains(t, out, "Ram ate a fruit")

	out, err = execute(t, workspace, "", "render", "--id", "1", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Ram ate a fruit")
	assert.Contains(t, out, "fruit [2]")

	out, err = execute(t, workspace, "", "reindex")
	require.NoError(t, err)
	assert.Contains(t, out, "reindex completed")
}

func TestRenderNeedsExactlyOneSource(t *testing.T) {
	t.Parallel()
	_, err := execute(t, t.TempDir(), "", "render")
	require.Error(t, err)
	_, err = execute(t, t.TempDir(), "", "render", "--id", "1", "--file", "x")
	require.Error(t, err)
}
