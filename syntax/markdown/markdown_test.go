package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *block.Node {
	t.Helper()
	root, err := NewParser().Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, block.DocumentKind, root.Kind)
	require.Nil(t, root.Parent())
	return root
}

func TestParseStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blockdom.syntax")
	defer teardown()
	//
	root := parse(t, "# Title\n\nHello *world*, see [docs](http://x.org).\n\n- a\n- b\n")
	headers := root.FindAll(block.Descendant, block.MatchKind(block.HeaderKind))
	require.Len(t, headers, 1)
	assert.Equal(t, 1, headers[0].Level)
	assert.Equal(t, "Title", block.TextOf(headers[0]))

	links := root.FindAll(block.Descendant, block.MatchKind(block.LinkKind))
	require.Len(t, links, 1)
	assert.Equal(t, block.URLRef, links[0].Ref.Type)
	assert.Equal(t, "http://x.org", links[0].Ref.Reference)
	assert.Equal(t, "docs", block.TextOf(links[0]))

	italic := root.FindFirst(block.Descendant, block.MatchKind(block.FormatKind))
	require.NotNil(t, italic)
	assert.Equal(t, block.Italic, italic.Format)

	items := root.FindAll(block.Descendant, block.MatchKind(block.ListItemKind))
	require.Len(t, items, 2)
	assert.Equal(t, "b", block.TextOf(items[1]))
	assert.True(t, items[0].Parent().Kind.Is(block.ListKind))
}

func TestParseMacros(t *testing.T) {
	root := parse(t, "{{toc depth=\"2\"/}}\n\nText{{footnote}}a note{{/footnote}} more.\n")
	first := root.FirstChild()
	require.NotNil(t, first)
	assert.Equal(t, block.MacroKind, first.Kind)
	assert.Equal(t, "toc", first.MacroID)
	assert.False(t, first.Inline)
	assert.Equal(t, "2", first.Param("depth"))

	fn := root.FindFirst(block.Descendant, block.MatchIDs(block.MacroKind, "footnote"))
	require.NotNil(t, fn)
	assert.True(t, fn.Inline)
	assert.Equal(t, "a note", fn.Text)
	assert.Equal(t, block.ParagraphKind, fn.Parent().Kind)
}

func TestParseUnclosedMacroIsText(t *testing.T) {
	root := parse(t, "a {{footnote}} b\n")
	assert.Nil(t, root.FindFirst(block.Descendant, block.MatchKind(block.MacroKind)))
}

func TestParseHeadingID(t *testing.T) {
	root := parse(t, "# Intro {#intro}\n")
	h := root.FindFirst(block.Descendant, block.MatchKind(block.HeaderKind))
	require.NotNil(t, h)
	assert.Equal(t, "intro", h.Param("id"))
}

func TestParseTable(t *testing.T) {
	root := parse(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	rows := root.FindAll(block.Descendant, block.MatchKind(block.TableRowKind))
	require.Len(t, rows, 2)
	head := rows[0].FindAll(block.Child, block.MatchKind(block.TableHeadCellKind))
	assert.Len(t, head, 2)
	cells := rows[1].FindAll(block.Child, block.MatchKind(block.TableCellKind))
	assert.Len(t, cells, 2)
	assert.Len(t, rows[1].FindAll(block.Child, block.MatchKind(block.TableHeadCellKind)), 0)
}

func TestParseCode(t *testing.T) {
	root := parse(t, "```go\nx := 1\n```\n\nuse `x` here\n")
	verb := root.FindAll(block.Descendant, block.MatchKind(block.VerbatimKind))
	require.Len(t, verb, 2)
	assert.Equal(t, "x := 1", verb[0].Text)
	assert.Equal(t, "go", verb[0].Param("language"))
	assert.False(t, verb[0].Inline)
	assert.True(t, verb[1].Inline)
	assert.Equal(t, "x", verb[1].Text)
}

func TestRenderRoundTrip(t *testing.T) {
	for _, src := range []string{
		"# Title\n\nHello **big** world.\n",
		"- a\n- b\n",
		"1. one\n2. two\n",
		"> quoted\n",
		"See [docs](http://x.org) and <http://y.org>.\n",
	} {
		root := parse(t, src)
		var buf bytes.Buffer
		require.NoError(t, NewRenderer().Render(&buf, root))
		assert.Equal(t, src, buf.String())
	}
}

func TestRenderMacroMarkerIsTransparent(t *testing.T) {
	doc := block.NewDocument(
		block.NewMacroMarker("toc", nil, "", false,
			block.NewBulletedList(block.NewListItem(block.Words("entry")...))),
		block.NewParagraph(block.Words("text")...),
	)
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, doc))
	assert.Equal(t, "- entry\n\ntext\n", buf.String())
}

func TestRenderEmptyLinesNeverNegative(t *testing.T) {
	doc := block.NewDocument(
		block.NewParagraph(block.Words("a")...),
		block.NewEmptyLines(-1),
		block.NewParagraph(block.Words("b")...),
	)
	var buf bytes.Buffer
	require.NoError(t, NewRenderer().Render(&buf, doc))
	assert.Equal(t, "a\n\nb\n", buf.String())
}
