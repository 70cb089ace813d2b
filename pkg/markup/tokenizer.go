// Package markup splits the page markup subset into blocks.
//
// The subset is fixed: h1, h2, pre, ul/li, p and a href. A block tag is only
// recognised when its opener matches exactly and its closer exists somewhere
// after it; anything else starting with '<' is skipped up to the next '>'.
package markup

import (
	"strings"
)

type BlockType int

const (
	BlockEOF BlockType = iota
	BlockHeading1
	BlockHeading2
	BlockPre
	BlockList
	BlockParagraph
	BlockLink
	BlockWord
)

func (t BlockType) String() string {
	switch t {
	case BlockEOF:
		return "eof"
	case BlockHeading1:
		return "h1"
	case BlockHeading2:
		return "h2"
	case BlockPre:
		return "pre"
	case BlockList:
		return "ul"
	case BlockParagraph:
		return "p"
	case BlockLink:
		return "a"
	case BlockWord:
		return "word"
	}
	return "unknown"
}

// Block is one top-level construct of the document.
type Block struct {
	Type BlockType
	// Text is the inner text of the block, the link text of a BlockLink or
	// the characters of a BlockWord.
	Text string
	// Href is set for BlockLink.
	Href string
	// Items holds the raw inner text of each <li> of a BlockList.
	Items []string
}

type blockTag struct {
	typ   BlockType
	open  string
	close string
}

// blockTags in dispatch priority order.
var blockTags = []blockTag{
	{BlockHeading1, "<h1>", "</h1>"},
	{BlockHeading2, "<h2>", "</h2>"},
	{BlockPre, "<pre>", "</pre>"},
	{BlockList, "<ul>", "</ul>"},
	{BlockParagraph, "<p>", "</p>"},
	{BlockLink, `<a href="`, "</a>"},
}

type state int

const (
	stateData state = iota
	stateTagOpen
	stateTagName
	stateInner
	stateTagClose
	stateBogusTag
)

// Tokenizer is a forward-only state machine over the markup.
type Tokenizer struct {
	input string
	pos   int
	state state

	// start of the tag currently being examined
	mark int
	tag  *blockTag
	// inner text bounds and href of the candidate block
	innerStart, innerEnd int
	href                 string
}

func NewTokenizer(markup string) *Tokenizer {
	return &Tokenizer{input: markup}
}

// Next returns the next block, or a BlockEOF block once the input is consumed.
func (t *Tokenizer) Next() Block {
	for {
		switch t.state {
		case stateData:
			if t.pos >= len(t.input) {
				return Block{Type: BlockEOF}
			}
			c := t.input[t.pos]
			switch {
			case c == '<':
				t.mark = t.pos
				t.state = stateTagOpen
			case isSpace(c):
				t.pos++
			default:
				return Block{Type: BlockWord, Text: t.readWord()}
			}

		case stateTagOpen:
			t.tag = nil
			t.state = stateTagName

		case stateTagName:
			rest := t.input[t.mark:]
			for i := range blockTags {
				if strings.HasPrefix(rest, blockTags[i].open) {
					t.tag = &blockTags[i]
					break
				}
			}
			if t.tag == nil {
				t.state = stateBogusTag
				continue
			}
			t.state = stateInner

		case stateInner:
			if !t.findInner() {
				t.state = stateBogusTag
				continue
			}
			t.state = stateTagClose

		case stateTagClose:
			b := t.emit()
			t.pos = t.innerEnd + len(t.tag.close)
			t.state = stateData
			return b

		case stateBogusTag:
			t.state = stateData
			end := strings.IndexByte(t.input[t.mark:], '>')
			if end < 0 {
				// no '>' anywhere ahead: the '<' is ordinary text
				t.pos = t.mark + 1
				return Block{Type: BlockWord, Text: "<" + t.readWord()}
			}
			t.pos = t.mark + end + 1
		}
	}
}

// findInner locates the inner text of the candidate block and its closer.
func (t *Tokenizer) findInner() bool {
	start := t.mark + len(t.tag.open)
	t.href = ""
	if t.tag.typ == BlockLink {
		hrefEnd := strings.Index(t.input[t.mark:], `">`)
		if hrefEnd < 0 {
			return false
		}
		hrefEnd += t.mark
		if hrefEnd < start {
			return false
		}
		t.href = t.input[start:hrefEnd]
		start = hrefEnd + 2
	}
	end := strings.Index(t.input[start:], t.tag.close)
	if end < 0 {
		return false
	}
	t.innerStart, t.innerEnd = start, start+end
	return true
}

func (t *Tokenizer) emit() Block {
	inner := t.input[t.innerStart:t.innerEnd]
	switch t.tag.typ {
	case BlockLink:
		return Block{Type: BlockLink, Text: inner, Href: t.href}
	case BlockList:
		return Block{Type: BlockList, Text: inner, Items: splitItems(inner)}
	default:
		return Block{Type: t.tag.typ, Text: inner}
	}
}

// readWord consumes a run of characters up to whitespace or '<'.
func (t *Tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' && !isSpace(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

// splitItems extracts the <li> contents of a list in order. Scanning stops at
// the first item without an opener or closer.
func splitItems(list string) []string {
	var items []string
	pos := 0
	for pos < len(list) {
		start := strings.Index(list[pos:], "<li>")
		if start < 0 {
			break
		}
		start += pos + len("<li>")
		end := strings.Index(list[start:], "</li>")
		if end < 0 {
			break
		}
		items = append(items, list[start:start+end])
		pos = start + end + len("</li>")
	}
	return items
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Blocks tokenizes the whole input.
func Blocks(markup string) []Block {
	var out []Block
	t := NewTokenizer(markup)
	for {
		b := t.Next()
		if b.Type == BlockEOF {
			return out
		}
		out = append(out, b)
	}
}
