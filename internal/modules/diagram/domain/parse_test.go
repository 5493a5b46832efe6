package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depflow/internal/modules/diagram/domain"
)

const woodcutter = `<sent_id=1>
# lakadZahArA jaMgala meM gayA
gayA_1(went_1)    1  0:main
lakadZahArA_1(woodcutter_1)   2  1:k1
jaMgala_1(forest_1) 3 1:k7p
[ne_1]  4  1:k2
rAma_1(Ram) 5 4:name
this line has no id
6 7 8
</sent_id>`

func TestParseEndToEndScenario(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("rAma_1 1 0:main\ngayA_2 2 1:k1")

	require.False(t, idx.Empty())
	assert.Equal(t, "1", idx.RootID)
	require.Len(t, idx.Edges, 1)
	assert.Equal(t, domain.Edge{ID: "1->2", From: "1", To: "2", Relation: "k1", Label: "Who/What"}, idx.Edges[0])
	assert.Equal(t, []string{"1", "2"}, idx.Order)
	assert.Equal(t, "rAma", idx.Nodes["1"].Label)
	assert.Equal(t, "", idx.Nodes["1"].Head)
	assert.Equal(t, domain.ColorRoot, idx.Nodes["1"].Color)
	assert.Equal(t, domain.ColorDefault, idx.Nodes["2"].Color)
}

func TestParseSkipsMetadataAndMalformedLines(t *testing.T) {
	t.Parallel()
	idx := domain.Parse(woodcutter)

	require.Len(t, idx.Records, 5)
	assert.Equal(t, "1", idx.RootID)
	assert.Equal(t, []string{"1", "2", "3", "4"}, idx.Order)
	assert.Equal(t, "went", idx.Nodes["1"].Label)
	assert.Equal(t, "woodcutter", idx.Nodes["2"].Label)
	assert.Equal(t, "forest", idx.Nodes["3"].Label)
}

func TestParseAbsorbsDescriptorIntoPlaceholder(t *testing.T) {
	t.Parallel()
	idx := domain.Parse(woodcutter)

	_, ok := idx.Nodes["5"]
	assert.False(t, ok, "descriptor record must not become a node")
	assert.Equal(t, "Ram", idx.Nodes["4"].Label)
	for _, e := range idx.Edges {
		assert.NotEqual(t, "5", e.To)
	}
	require.Len(t, idx.Edges, 3)
	assert.Equal(t, "Whom/What", idx.Edges[2].Label)
}

func TestParsePlaceholderFallsBackToStrippedToken(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("[ne_1] 1 0:main\n[compound_2] 2 1:k1")
	assert.Equal(t, "ne", idx.Nodes["1"].Label)
	assert.Equal(t, "compound", idx.Nodes["2"].Label)
}

func TestParseConjunctionColor(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("KA_yA_1(eat_1) 1 0:main\n[conj_1] 2 1:k2\nAma_1(mango) 3 2:op1\nkelA_1(banana) 4 2:op2")

	assert.Equal(t, "eat (past)", idx.Nodes["1"].Label)
	assert.Equal(t, "and", idx.Nodes["2"].Label)
	assert.Equal(t, domain.ColorConjunction, idx.Nodes["2"].Color)
	assert.Equal(t, "op1", idx.Edges[1].Label)
}

func TestParseMissingRootIsEmpty(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("rAma_1 1 2:k1\ngayA_2 2 3:k2")
	assert.True(t, idx.Empty())
	assert.Empty(t, idx.Edges)

	assert.True(t, domain.Parse("").Empty())
	assert.True(t, domain.Parse("# only comments\n<sent>").Empty())
}

func TestParseToleratesDanglingHead(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("rAma_1 1 0:main\ngayA_2 2 9:k1\nPala_3 3 2:k2")

	assert.Equal(t, []string{"2"}, idx.Dangling)
	require.Len(t, idx.Edges, 1)
	assert.Equal(t, "2->3", idx.Edges[0].ID)
}

func TestParseRepeatedIDKeepsLastRecord(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("rAma_1 1 0:main\ngayA_2 2 1:k1\nsowA_2 2 1:k2")

	assert.Equal(t, []string{"1", "2"}, idx.Order)
	assert.Equal(t, "sowA", idx.Nodes["2"].Label)
	assert.Equal(t, "Whom/What", idx.Edges[0].Label)
}

func TestParseHandlesCRLF(t *testing.T) {
	t.Parallel()
	idx := domain.Parse("rAma_1 1 0:main\r\ngayA_2 2 1:k1\r\n")
	assert.Equal(t, "1", idx.RootID)
	assert.Len(t, idx.Edges, 1)
}

func TestChildEdges(t *testing.T) {
	t.Parallel()
	idx := domain.Parse(woodcutter)
	children := idx.ChildEdges("1")
	require.Len(t, children, 3)
	assert.Equal(t, []string{"2", "3", "4"}, []string{children[0].To, children[1].To, children[2].To})
	assert.Empty(t, idx.ChildEdges("3"))
}
