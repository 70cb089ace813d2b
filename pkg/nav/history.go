// Package nav keeps the browser's navigation history and bookmarks in
// memory.
package nav

// History is a linear back/forward list. Recording a new address while not at
// the tail drops the forward entries.
type History struct {
	entries []string
	index   int
}

func NewHistory() *History {
	return &History{index: -1}
}

// Record makes addr the current entry. Recording the address already at the
// tail is a no-op.
func (h *History) Record(addr string) {
	if addr == "" {
		return
	}
	if h.index < len(h.entries)-1 {
		h.entries = h.entries[:h.index+1]
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == addr {
		return
	}
	h.entries = append(h.entries, addr)
	h.index = len(h.entries) - 1
}

func (h *History) CanGoBack() bool    { return h.index > 0 }
func (h *History) CanGoForward() bool { return h.index < len(h.entries)-1 }

// Back steps back and returns the new current address, or "" at the start.
func (h *History) Back() string {
	if !h.CanGoBack() {
		return ""
	}
	h.index--
	return h.entries[h.index]
}

// Forward steps forward and returns the new current address, or "" at the end.
func (h *History) Forward() string {
	if !h.CanGoForward() {
		return ""
	}
	h.index++
	return h.entries[h.index]
}

func (h *History) Current() string {
	if h.index < 0 || h.index >= len(h.entries) {
		return ""
	}
	return h.entries[h.index]
}

// Index is the position of the current entry, -1 when empty.
func (h *History) Index() int { return h.index }
func (h *History) Len() int   { return len(h.entries) }

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

func (h *History) Clear() {
	h.entries = nil
	h.index = -1
}
