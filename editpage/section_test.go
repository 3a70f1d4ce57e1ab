package editpage

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument_Lossless(t *testing.T) {
	inputs := []string{
		"",
		"<html></html>",
		"a\n<!-- section:colors:begin -->\nx\n<!-- section:colors:end -->\nb",
		"<!-- section:colors:begin -->never closed\n<p>tail</p>",
		"<!-- section:a:begin --><!-- section:a:end --><!-- section:b:begin -->b<!-- section:b:end -->",
		"<!-- section:a:end --> stray end",
	}
	for _, in := range inputs {
		assert.Equal(t, in, ParseDocument(in).String())
	}
}

func TestParseDocument_Blocks(t *testing.T) {
	doc := ParseDocument("head\n<!-- section:colors:begin -->\nx\n<!-- section:colors:end -->\ntail")

	require.Len(t, doc.Blocks, 3)
	assert.False(t, doc.Blocks[0].IsSection())
	assert.Equal(t, "colors", doc.Blocks[1].Name)
	assert.Equal(t, "\ntail", doc.Blocks[2].Text)
	assert.Len(t, doc.Sections("colors"), 1)
	assert.Empty(t, doc.Sections("sizes"))
}

func TestParseDocument_UnterminatedStaysSkeleton(t *testing.T) {
	doc := ParseDocument("a <!-- section:colors:begin --> b")

	assert.Empty(t, doc.Sections("colors"))
	assert.True(t, doc.SkeletonContains(BeginMarker("colors")))
}

func TestParseDocument_SectionsDoNotSpanOtherSections(t *testing.T) {
	doc := ParseDocument("<!-- section:colors:begin --> a <!-- section:sizes:begin --> b <!-- section:sizes:end --> <!-- section:colors:end -->")

	assert.Empty(t, doc.Sections("colors"))
	require.Len(t, doc.Sections("sizes"), 1)
	assert.Equal(t, "<!-- section:sizes:begin --> b <!-- section:sizes:end -->", doc.Sections("sizes")[0].Text)
	assert.True(t, doc.SkeletonContains(BeginMarker("colors")))
	assert.True(t, doc.SkeletonContains(EndMarker("colors")))
}

func TestDocument_RemoveStrayMarkers(t *testing.T) {
	doc := ParseDocument("a <!-- section:colors:begin --> b <!-- section:sizes:begin -->x<!-- section:sizes:end --> <!-- section:colors:end --> c")

	assert.Equal(t, 2, doc.RemoveStrayMarkers("colors"))
	assert.Equal(t, "a  b <!-- section:sizes:begin -->x<!-- section:sizes:end -->  c", doc.String())
	assert.Len(t, doc.Sections("sizes"), 1)
	assert.Equal(t, 0, doc.RemoveStrayMarkers("sizes"))
}

func TestDocument_RemoveThenInsertIsFixedPoint(t *testing.T) {
	text := "<form>\n    <!-- A -->\n    <!-- B -->\n</form>"
	doc := ParseDocument(text)
	require.True(t, doc.InsertBefore("<!-- B -->", "sec", "        <p>body</p>"))

	inserted := doc.String()
	assert.Equal(t, "<form>\n    <!-- A -->\n    <!-- section:sec:begin -->\n        <p>body</p>\n    <!-- section:sec:end -->\n    <!-- B -->\n</form>", inserted)

	again := ParseDocument(inserted)
	assert.Equal(t, 1, again.RemoveSections("sec"))
	assert.Equal(t, text, again.String())
	require.True(t, again.InsertBefore("<!-- B -->", "sec", "        <p>body</p>"))
	assert.Equal(t, inserted, again.String())
}

func TestDocument_InsertBefore_IgnoresAnchorInsideSections(t *testing.T) {
	doc := ParseDocument("<!-- section:x:begin --><!-- B --><!-- section:x:end -->")

	assert.False(t, doc.InsertBefore("<!-- B -->", "sec", "body"))
	assert.Equal(t, 1, doc.CountAnchor("<!-- B -->"))
}

func TestDocument_RemoveMatches_SkeletonOnly(t *testing.T) {
	doc := ParseDocument("old <!-- section:x:begin -->old<!-- section:x:end --> old")

	removed := doc.RemoveMatches(RegexpMatcher{Pattern: regexp.MustCompile(`old`)})

	assert.Equal(t, 2, removed)
	assert.Equal(t, " <!-- section:x:begin -->old<!-- section:x:end --> ", doc.String())
}

func TestElementAfterComment(t *testing.T) {
	m := ElementAfterComment{Comment: "<!-- X -->", Tag: "div"}

	text := "a\n  <!-- X -->\n  <div class=\"outer\"><div>in</div><divider/></div>\nb"
	ranges := m.FindAll(text)
	require.Len(t, ranges, 1)
	assert.Equal(t, "a\nb", text[:ranges[0][0]]+text[ranges[0][1]:])
}

func TestElementAfterComment_Unbalanced(t *testing.T) {
	m := ElementAfterComment{Comment: "<!-- X -->", Tag: "div"}

	text := "a <!-- X --><div><div></div>"
	ranges := m.FindAll(text)
	require.Len(t, ranges, 1)
	assert.Equal(t, "a<div><div></div>", text[:ranges[0][0]]+text[ranges[0][1]:])
}

func TestElementAfterComment_NoElement(t *testing.T) {
	m := ElementAfterComment{Comment: "<!-- X -->", Tag: "div"}

	text := "<!-- X --> <p>keep</p>"
	ranges := m.FindAll(text)
	require.Len(t, ranges, 1)
	assert.Equal(t, " <p>keep</p>", text[ranges[0][1]:])
}
