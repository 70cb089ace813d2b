package markup

import (
	"strings"
)

type RunType int

const (
	RunWord RunType = iota
	RunLink
)

// Run is one placement unit inside a block: a single word, or the whole text
// of a link.
type Run struct {
	Type RunType
	Text string
	Href string
}

const (
	linkOpen  = `<a href="`
	linkHref  = `">`
	linkClose = "</a>"
)

// matchLink reports whether s[i:] starts a complete anchor and returns its
// parts and the index just past the closing tag.
func matchLink(s string, i int) (href, text string, end int, ok bool) {
	if !strings.HasPrefix(s[i:], linkOpen) {
		return "", "", 0, false
	}
	hrefStart := i + len(linkOpen)
	hrefEnd := strings.Index(s[hrefStart:], linkHref)
	if hrefEnd < 0 {
		return "", "", 0, false
	}
	hrefEnd += hrefStart
	textStart := hrefEnd + len(linkHref)
	textEnd := strings.Index(s[textStart:], linkClose)
	if textEnd < 0 {
		return "", "", 0, false
	}
	textEnd += textStart
	return s[hrefStart:hrefEnd], s[textStart:textEnd], textEnd + len(linkClose), true
}

// ScanInline splits the inner text of a heading or paragraph into runs.
// Anchors become one link run each, other tags are dropped and break words,
// a '<' with no closing '>' is kept as text.
func ScanInline(s string) []Run {
	var runs []Run
	pos := 0
	for pos < len(s) {
		c := s[pos]
		switch {
		case isSpace(c):
			pos++
		case c == '<':
			if href, text, end, ok := matchLink(s, pos); ok {
				runs = appendLink(runs, href, text)
				pos = end
				continue
			}
			if end := strings.IndexByte(s[pos:], '>'); end >= 0 {
				pos += end + 1
				continue
			}
			start := pos
			pos++
			for pos < len(s) && s[pos] != '<' && !isSpace(s[pos]) {
				pos++
			}
			runs = append(runs, Run{Type: RunWord, Text: s[start:pos]})
		default:
			start := pos
			for pos < len(s) && s[pos] != '<' && !isSpace(s[pos]) {
				pos++
			}
			runs = append(runs, Run{Type: RunWord, Text: s[start:pos]})
		}
	}
	return runs
}

var strongStripper = strings.NewReplacer("<strong>", "", "</strong>", "")

// ScanListItem splits a list item into runs. <strong> markers are removed and
// at most one anchor is recognised: the words before it, the link text as a
// single run, then the words after it taken literally.
func ScanListItem(s string) []Run {
	s = strongStripper.Replace(s)
	i := strings.Index(s, linkOpen)
	if i < 0 {
		return words(nil, s)
	}
	href, text, end, ok := matchLink(s, i)
	if !ok {
		return words(nil, s)
	}
	runs := words(nil, s[:i])
	runs = appendLink(runs, href, text)
	return words(runs, s[end:])
}

func words(runs []Run, s string) []Run {
	for _, w := range strings.Fields(s) {
		runs = append(runs, Run{Type: RunWord, Text: w})
	}
	return runs
}

// appendLink adds a link run unless its text is blank; blank text produces no
// visible ink and therefore no clickable area. An anchor without a target is
// laid out as ordinary words.
func appendLink(runs []Run, href, text string) []Run {
	if strings.TrimSpace(text) == "" {
		return runs
	}
	if strings.TrimSpace(href) == "" {
		return words(runs, text)
	}
	return append(runs, Run{Type: RunLink, Text: text, Href: href})
}
