package editpage

import (
	"regexp"
	"strings"
)

// Named sections are delimited by marker comments:
//
//	<!-- section:size-chart:begin -->
//	...
//	<!-- section:size-chart:end -->
//
// Everything outside markers is skeleton text. Sections never nest.
var (
	beginMarkerRegex = regexp.MustCompile(`<!-- section:([a-z0-9-]+):begin -->`)
	// a removed section takes the line break and indentation that followed it
	trailingBreakRegex = regexp.MustCompile(`^\r?\n[ \t]*`)
)

// BeginMarker returns the comment opening section name
func BeginMarker(name string) string {
	return "<!-- section:" + name + ":begin -->"
}

// EndMarker returns the comment closing section name
func EndMarker(name string) string {
	return "<!-- section:" + name + ":end -->"
}

// Block is one element of a parsed document: skeleton text when Name is
// empty, otherwise a complete named section including its markers.
type Block struct {
	Name string
	Text string
}

// IsSection reports whether the block is a named section
func (b Block) IsSection() bool {
	return b.Name != ""
}

// Document is a page split into an ordered sequence of blocks.
// Concatenating the blocks always reproduces the input text.
type Document struct {
	Blocks []Block
}

// ParseDocument splits text into skeleton and section blocks. A begin marker
// pairs with its end marker only when no other begin marker comes first;
// otherwise it stays in the skeleton text.
func ParseDocument(text string) *Document {
	doc := &Document{}
	rest := text
	for {
		loc := beginMarkerRegex.FindStringSubmatchIndex(rest)
		if loc == nil {
			doc.appendText(rest)
			return doc
		}
		name := rest[loc[2]:loc[3]]
		end := EndMarker(name)
		scope := rest[loc[1]:]
		if next := beginMarkerRegex.FindStringIndex(scope); next != nil {
			scope = scope[:next[0]]
		}
		endIdx := strings.Index(scope, end)
		if endIdx < 0 {
			doc.appendText(rest[:loc[1]])
			rest = rest[loc[1]:]
			continue
		}
		stop := loc[1] + endIdx + len(end)
		doc.appendText(rest[:loc[0]])
		doc.Blocks = append(doc.Blocks, Block{Name: name, Text: rest[loc[0]:stop]})
		rest = rest[stop:]
	}
}

func (d *Document) appendText(text string) {
	if text == "" {
		return
	}
	if n := len(d.Blocks); n > 0 && !d.Blocks[n-1].IsSection() {
		d.Blocks[n-1].Text += text
		return
	}
	d.Blocks = append(d.Blocks, Block{Text: text})
}

// String renders the document back to text
func (d *Document) String() string {
	var b strings.Builder
	for _, block := range d.Blocks {
		b.WriteString(block.Text)
	}
	return b.String()
}

// Sections returns the named blocks called name, in document order
func (d *Document) Sections(name string) []Block {
	var out []Block
	for _, block := range d.Blocks {
		if block.Name == name {
			out = append(out, block)
		}
	}
	return out
}

// RemoveSections drops every section called name together with the line
// break that followed it, and returns how many were dropped.
func (d *Document) RemoveSections(name string) int {
	removed := 0
	trimNext := false
	rebuilt := &Document{}
	for _, block := range d.Blocks {
		if block.Name == name {
			removed++
			trimNext = true
			continue
		}
		if trimNext && !block.IsSection() {
			block.Text = trailingBreakRegex.ReplaceAllString(block.Text, "")
		}
		trimNext = false
		if block.IsSection() {
			rebuilt.Blocks = append(rebuilt.Blocks, block)
		} else {
			rebuilt.appendText(block.Text)
		}
	}
	d.Blocks = rebuilt.Blocks
	return removed
}

// RemoveStrayMarkers deletes begin and end markers of name that were left in
// skeleton text by a damaged section, and returns how many were deleted.
func (d *Document) RemoveStrayMarkers(name string) int {
	removed := 0
	markers := []string{BeginMarker(name), EndMarker(name)}
	for i := range d.Blocks {
		if d.Blocks[i].IsSection() {
			continue
		}
		for stray := true; stray; {
			stray = false
			for _, marker := range markers {
				if n := strings.Count(d.Blocks[i].Text, marker); n > 0 {
					d.Blocks[i].Text = strings.ReplaceAll(d.Blocks[i].Text, marker, "")
					removed += n
					stray = true
				}
			}
		}
	}
	d.compact()
	return removed
}

// RemoveMatches cuts every range a Matcher finds in skeleton text, repeating
// until nothing matches. Section blocks are never touched.
func (d *Document) RemoveMatches(m Matcher) int {
	removed := 0
	for i := range d.Blocks {
		if d.Blocks[i].IsSection() {
			continue
		}
		// each pass removes at least one range, so the text shrinks until it stops matching
		for {
			ranges := m.FindAll(d.Blocks[i].Text)
			if len(ranges) == 0 {
				break
			}
			text := d.Blocks[i].Text
			var b strings.Builder
			last := 0
			for _, r := range ranges {
				b.WriteString(text[last:r[0]])
				last = r[1]
			}
			b.WriteString(text[last:])
			d.Blocks[i].Text = b.String()
			removed += len(ranges)
		}
	}
	d.compact()
	return removed
}

// compact merges adjacent skeleton blocks and drops empty ones
func (d *Document) compact() {
	rebuilt := &Document{}
	for _, block := range d.Blocks {
		if block.IsSection() {
			rebuilt.Blocks = append(rebuilt.Blocks, block)
			continue
		}
		rebuilt.appendText(block.Text)
	}
	d.Blocks = rebuilt.Blocks
}

// SkeletonContains reports whether fragment occurs in skeleton text
func (d *Document) SkeletonContains(fragment string) bool {
	for _, block := range d.Blocks {
		if !block.IsSection() && strings.Contains(block.Text, fragment) {
			return true
		}
	}
	return false
}

// CountAnchor counts anchor occurrences over the whole document
func (d *Document) CountAnchor(anchor string) int {
	return strings.Count(d.String(), anchor)
}

// InsertBefore places a new section immediately before the only occurrence
// of anchor in skeleton text. The section starts at the anchor's indentation
// and the anchor moves to the next line with the same indentation, so
// RemoveSections followed by InsertBefore is a fixed point.
// It returns false when the anchor is not found in skeleton text.
func (d *Document) InsertBefore(anchor, name, body string) bool {
	for i, block := range d.Blocks {
		if block.IsSection() {
			continue
		}
		idx := strings.Index(block.Text, anchor)
		if idx < 0 {
			continue
		}
		before, after := block.Text[:idx], block.Text[idx:]
		indent := trailingIndent(before)
		section := Block{Name: name, Text: renderSection(name, body, indent)}

		blocks := make([]Block, 0, len(d.Blocks)+2)
		blocks = append(blocks, d.Blocks[:i]...)
		if before != "" {
			blocks = append(blocks, Block{Text: before})
		}
		blocks = append(blocks, section, Block{Text: "\n" + indent + after})
		blocks = append(blocks, d.Blocks[i+1:]...)
		d.Blocks = blocks
		d.compact()
		return true
	}
	return false
}

func renderSection(name, body, indent string) string {
	body = strings.Trim(body, "\r\n")
	var b strings.Builder
	b.WriteString(BeginMarker(name))
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	b.WriteString("\n")
	b.WriteString(indent)
	b.WriteString(EndMarker(name))
	return b.String()
}

// trailingIndent returns the spaces and tabs between the last line break and the end of s
func trailingIndent(s string) string {
	end := len(s)
	start := end
	for start > 0 && (s[start-1] == ' ' || s[start-1] == '\t') {
		start--
	}
	if start > 0 && s[start-1] != '\n' {
		return ""
	}
	return s[start:end]
}
