package nav

import (
	"slices"
	"testing"
)

func TestHistory_BackAndForward(t *testing.T) {
	h := NewHistory()
	if h.CanGoBack() || h.CanGoForward() || h.Current() != "" || h.Index() != -1 {
		t.Fatal("Expected an empty history")
	}

	h.Record("a")
	h.Record("b")
	h.Record("c")
	if h.Current() != "c" || h.Index() != 2 {
		t.Errorf("Expected current c at 2, got %q at %d", h.Current(), h.Index())
	}
	if got := h.Back(); got != "b" {
		t.Errorf("Expected b, got %q", got)
	}
	if got := h.Back(); got != "a" {
		t.Errorf("Expected a, got %q", got)
	}
	if got := h.Back(); got != "" {
		t.Errorf("Expected empty at the start, got %q", got)
	}
	if got := h.Forward(); got != "b" {
		t.Errorf("Expected b, got %q", got)
	}
	h.Forward()
	if got := h.Forward(); got != "" {
		t.Errorf("Expected empty at the end, got %q", got)
	}
}

func TestHistory_RecordTruncatesForward(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Record("b")
	h.Record("c")
	h.Back()
	h.Back()
	h.Record("d")

	if want := []string{"a", "d"}; !slices.Equal(h.Entries(), want) {
		t.Errorf("Expected %v, got %v", want, h.Entries())
	}
	if h.CanGoForward() {
		t.Error("Expected no forward entries")
	}
}

func TestHistory_SkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Record("a")
	h.Record("b")
	h.Record("a")

	if want := []string{"a", "b", "a"}; !slices.Equal(h.Entries(), want) {
		t.Errorf("Expected %v, got %v", want, h.Entries())
	}
	h.Record("")
	if h.Len() != 3 {
		t.Errorf("Expected empty address ignored, got %d entries", h.Len())
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory()
	h.Record("a")
	h.Clear()
	if h.Len() != 0 || h.Index() != -1 || h.Current() != "" {
		t.Error("Expected history cleared")
	}
}

func TestBookmarks_Toggle(t *testing.T) {
	b := NewBookmarks()
	if !b.Toggle("hero://a") {
		t.Error("Expected first toggle to add")
	}
	if !b.IsBookmarked("hero://a") {
		t.Error("Expected hero://a bookmarked")
	}
	if got := b.List(); len(got) != 1 || got[0].Title != "hero://a" {
		t.Errorf("Expected the URL as the title, got %+v", got)
	}
	if b.Toggle("hero://a") {
		t.Error("Expected second toggle to remove")
	}
	if b.IsBookmarked("hero://a") {
		t.Error("Expected hero://a removed")
	}
}

func TestBookmarks_RemoveAt(t *testing.T) {
	b := NewBookmarks(Bookmark{Title: "A", URL: "a"}, Bookmark{Title: "B", URL: "b"})
	b.RemoveAt(5)
	b.RemoveAt(-1)
	if len(b.List()) != 2 {
		t.Fatalf("Expected out-of-range removals ignored")
	}
	b.RemoveAt(0)
	if got := b.List(); len(got) != 1 || got[0].URL != "b" {
		t.Errorf("Expected only b left, got %+v", got)
	}
}

func TestBookmarks_ListIsACopy(t *testing.T) {
	b := NewBookmarks()
	b.Add("A", "a")
	l := b.List()
	l[0].URL = "changed"
	if !b.IsBookmarked("a") {
		t.Error("Expected the list to be independent of the bookmarks")
	}
}
