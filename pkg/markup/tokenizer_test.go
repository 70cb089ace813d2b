package markup

import (
	"reflect"
	"testing"
)

func types(blocks []Block) []BlockType {
	out := make([]BlockType, len(blocks))
	for i, b := range blocks {
		out[i] = b.Type
	}
	return out
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer("")
	if b := tok.Next(); b.Type != BlockEOF {
		t.Errorf("Expected EOF, got %v", b.Type)
	}
	if b := tok.Next(); b.Type != BlockEOF {
		t.Errorf("Expected EOF to repeat, got %v", b.Type)
	}
}

func TestTokenizer_BlockSequence(t *testing.T) {
	blocks := Blocks(`<h1>Title</h1><h2>Sub</h2><pre>x</pre><ul><li>a</li></ul><p>para</p><a href="hero://x">go</a>`)
	want := []BlockType{BlockHeading1, BlockHeading2, BlockPre, BlockList, BlockParagraph, BlockLink}
	if !reflect.DeepEqual(types(blocks), want) {
		t.Fatalf("Expected %v, got %v", want, types(blocks))
	}
	if blocks[0].Text != "Title" {
		t.Errorf("Expected h1 text 'Title', got %q", blocks[0].Text)
	}
	if blocks[5].Href != "hero://x" || blocks[5].Text != "go" {
		t.Errorf("Expected link hero://x 'go', got %q %q", blocks[5].Href, blocks[5].Text)
	}
}

func TestTokenizer_BareWordsAndWhitespace(t *testing.T) {
	blocks := Blocks("  hello\n\tworld  ")
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(blocks))
	}
	if blocks[0].Text != "hello" || blocks[1].Text != "world" {
		t.Errorf("Expected hello/world, got %q/%q", blocks[0].Text, blocks[1].Text)
	}
}

func TestTokenizer_UnknownTagsSkipped(t *testing.T) {
	blocks := Blocks(`<div class="x">one</div><br/>two`)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 words, got %v", blocks)
	}
	if blocks[0].Text != "one" || blocks[1].Text != "two" {
		t.Errorf("Expected one/two, got %q/%q", blocks[0].Text, blocks[1].Text)
	}
}

func TestTokenizer_WordStopsAtTag(t *testing.T) {
	blocks := Blocks("foo<b>bar</b>")
	if len(blocks) != 2 || blocks[0].Text != "foo" || blocks[1].Text != "bar" {
		t.Errorf("Expected foo, bar; got %v", blocks)
	}
}

func TestTokenizer_UnterminatedBlockFallsThrough(t *testing.T) {
	// no </h1>: the opener is skipped as an ordinary tag and its text becomes words
	blocks := Blocks("<h1>Never closed")
	want := []Block{
		{Type: BlockWord, Text: "Never"},
		{Type: BlockWord, Text: "closed"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Expected %v, got %v", want, blocks)
	}
}

func TestTokenizer_OpenerMustMatchExactly(t *testing.T) {
	blocks := Blocks(`<h1 class="big">Hi</h1>`)
	if len(blocks) != 1 || blocks[0].Type != BlockWord || blocks[0].Text != "Hi" {
		t.Errorf("Expected a single bare word, got %v", blocks)
	}
}

func TestTokenizer_PreBeforeParagraph(t *testing.T) {
	blocks := Blocks("<pre>code</pre>")
	if len(blocks) != 1 || blocks[0].Type != BlockPre {
		t.Fatalf("Expected a pre block, got %v", blocks)
	}
	if blocks[0].Text != "code" {
		t.Errorf("Expected inner text 'code', got %q", blocks[0].Text)
	}
}

func TestTokenizer_LoneAngleBracketIsLiteral(t *testing.T) {
	blocks := Blocks("a <b c")
	want := []Block{
		{Type: BlockWord, Text: "a"},
		{Type: BlockWord, Text: "<b"},
		{Type: BlockWord, Text: "c"},
	}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Expected %v, got %v", want, blocks)
	}
}

func TestTokenizer_TrailingAngleBracket(t *testing.T) {
	blocks := Blocks("end<")
	if len(blocks) != 2 || blocks[1].Text != "<" {
		t.Errorf("Expected [end <], got %v", blocks)
	}
}

func TestTokenizer_UnterminatedLink(t *testing.T) {
	blocks := Blocks(`<a href="hero://x">dangling`)
	if len(blocks) != 1 || blocks[0].Type != BlockWord || blocks[0].Text != "dangling" {
		t.Errorf("Expected a bare word, got %v", blocks)
	}
}

func TestTokenizer_ListItems(t *testing.T) {
	blocks := Blocks("<ul>\n<li>one</li>\n<li>two <strong>b</strong></li>\n</ul>")
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	want := []string{"one", "two <strong>b</strong>"}
	if !reflect.DeepEqual(blocks[0].Items, want) {
		t.Errorf("Expected items %q, got %q", want, blocks[0].Items)
	}
}

func TestTokenizer_ListStopsAtUnclosedItem(t *testing.T) {
	blocks := Blocks("<ul><li>one</li><li>two</ul>")
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if !reflect.DeepEqual(blocks[0].Items, []string{"one"}) {
		t.Errorf("Expected only the closed item, got %q", blocks[0].Items)
	}
}

func TestBlockType_String(t *testing.T) {
	if BlockPre.String() != "pre" || BlockType(99).String() != "unknown" {
		t.Error("unexpected block type names")
	}
}
