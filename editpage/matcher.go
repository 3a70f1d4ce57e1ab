package editpage

import (
	"regexp"
	"strings"
)

// Matcher finds unmarked fragments left by older generators.
// FindAll returns non-overlapping [start, end) ranges in ascending order.
type Matcher interface {
	FindAll(text string) [][2]int
}

// RegexpMatcher removes every match of a pattern
type RegexpMatcher struct {
	Pattern *regexp.Regexp
}

// FindAll implements Matcher
func (m RegexpMatcher) FindAll(text string) [][2]int {
	var out [][2]int
	for _, loc := range m.Pattern.FindAllStringIndex(text, -1) {
		if loc[1] > loc[0] {
			out = append(out, [2]int{loc[0], loc[1]})
		}
	}
	return out
}

// ElementAfterComment removes a comment, the whitespace before it and the
// element that directly follows it, matching nested tags of the same name.
// When the element is unbalanced only the comment goes.
type ElementAfterComment struct {
	Comment string
	Tag     string
}

// FindAll implements Matcher
func (m ElementAfterComment) FindAll(text string) [][2]int {
	var out [][2]int
	offset := 0
	for offset < len(text) {
		i := strings.Index(text[offset:], m.Comment)
		if i < 0 {
			break
		}
		start := offset + i
		from := start
		for from > offset && isSpace(text[from-1]) {
			from--
		}
		end := start + len(m.Comment)
		j := end
		for j < len(text) && isSpace(text[j]) {
			j++
		}
		if isOpenTag(text[j:], m.Tag) {
			if closeAt, ok := balancedClose(text, j, m.Tag); ok {
				end = closeAt
			}
		}
		out = append(out, [2]int{from, end})
		offset = end
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isOpenTag(s, tag string) bool {
	if !strings.HasPrefix(s, "<"+tag) || len(s) <= len(tag)+1 {
		return false
	}
	c := s[len(tag)+1]
	return c == '>' || c == '/' || isSpace(c)
}

// balancedClose returns the index just past the tag closing the element opened at start
func balancedClose(text string, start int, tag string) (int, bool) {
	open, closing := "<"+tag, "</"+tag+">"
	depth := 0
	i := start
	for i < len(text) {
		next := strings.IndexByte(text[i:], '<')
		if next < 0 {
			return 0, false
		}
		i += next
		switch {
		case strings.HasPrefix(text[i:], closing):
			depth--
			i += len(closing)
			if depth == 0 {
				return i, true
			}
		case strings.HasPrefix(text[i:], open) && isOpenTag(text[i:], tag):
			depth++
			i += len(open)
		default:
			i++
		}
	}
	return 0, false
}
