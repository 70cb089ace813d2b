package main

import (
	"strings"

	"herobrowser/pkg/nav"
	"herobrowser/pkg/resource"
)

// session is the browsing state behind the window: where we are, where we
// have been and what is bookmarked. It knows nothing about widgets.
type session struct {
	home      string
	current   string
	pending   uint64
	history   *nav.History
	bookmarks *nav.Bookmarks
}

func newSession(home string, bookmarks []nav.Bookmark) *session {
	return &session{
		home:      home,
		history:   nav.NewHistory(),
		bookmarks: nav.NewBookmarks(bookmarks...),
	}
}

// target turns what the user typed into an address to load. Empty input
// means home.
func (s *session) target(input string) string {
	addr := strings.TrimSpace(input)
	if addr == "" {
		return s.home
	}
	return addr
}

// link resolves a clicked href against the page it was clicked on.
func (s *session) link(href string) string {
	return resource.Resolve(s.current, href)
}

// begin starts a load and returns its ticket. Only the latest ticket may
// commit.
func (s *session) begin() uint64 {
	s.pending++
	return s.pending
}

// commit makes addr the current page if ticket is still the latest load.
func (s *session) commit(ticket uint64, addr string, record bool) bool {
	if ticket != s.pending {
		return false
	}
	s.current = addr
	if record {
		s.history.Record(addr)
	}
	return true
}

// back and forward move through history and return the address to load
// without recording it again, or "" at either end.
func (s *session) back() string    { return s.history.Back() }
func (s *session) forward() string { return s.history.Forward() }

// toggleBookmark flips the bookmark on the current page and reports whether
// it is now bookmarked.
func (s *session) toggleBookmark() bool {
	if s.current == "" {
		return false
	}
	return s.bookmarks.Toggle(s.current)
}

func (s *session) bookmarked() bool {
	return s.current != "" && s.bookmarks.IsBookmarked(s.current)
}
