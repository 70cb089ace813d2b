package nav

import "slices"

type Bookmark struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// Bookmarks is an ordered bookmark list. The same URL may be added twice;
// Toggle removes the first match.
type Bookmarks struct {
	items []Bookmark
}

func NewBookmarks(initial ...Bookmark) *Bookmarks {
	return &Bookmarks{items: slices.Clone(initial)}
}

func (b *Bookmarks) IsBookmarked(url string) bool {
	return b.find(url) >= 0
}

func (b *Bookmarks) Add(title, url string) {
	b.items = append(b.items, Bookmark{Title: title, URL: url})
}

// RemoveAt deletes the bookmark at index. Out-of-range indices are ignored.
func (b *Bookmarks) RemoveAt(index int) {
	if index < 0 || index >= len(b.items) {
		return
	}
	b.items = slices.Delete(b.items, index, index+1)
}

// List returns a copy of the bookmarks in insertion order.
func (b *Bookmarks) List() []Bookmark {
	return slices.Clone(b.items)
}

// Toggle removes url if it is bookmarked and adds it, titled by itself,
// otherwise. It reports whether url is bookmarked afterwards.
func (b *Bookmarks) Toggle(url string) bool {
	if i := b.find(url); i >= 0 {
		b.RemoveAt(i)
		return false
	}
	b.Add(url, url)
	return true
}

func (b *Bookmarks) Clear() {
	b.items = nil
}

func (b *Bookmarks) find(url string) int {
	return slices.IndexFunc(b.items, func(bm Bookmark) bool { return bm.URL == url })
}
