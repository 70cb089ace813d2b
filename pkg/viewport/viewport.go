// Package viewport keeps the scroll offset into a document and resolves
// pointer positions against its elements.
//
// Screen coordinates are relative to the content area; document coordinates
// start at the top of the laid-out content.
package viewport

import (
	"herobrowser/pkg/layout"
)

// NoHover is the hover index when no link is under the pointer.
const NoHover = -1

// View is the scroll and hover state of one document.
type View struct {
	doc           *layout.Document
	y             int
	visibleHeight int
	hover         int
}

func New(visibleHeight int) *View {
	return &View{visibleHeight: visibleHeight, hover: NoHover}
}

// Attach switches the view to doc, scrolled to the top with nothing hovered.
func (v *View) Attach(doc *layout.Document) {
	v.doc = doc
	v.Reset()
}

// Reset scrolls to the top and clears hover.
func (v *View) Reset() {
	v.y = 0
	v.hover = NoHover
}

func (v *View) Y() int             { return v.y }
func (v *View) HoverIndex() int    { return v.hover }
func (v *View) VisibleHeight() int { return v.visibleHeight }

func (v *View) total() int {
	if v.doc == nil {
		return 0
	}
	return v.doc.TotalContentHeight
}

// MaxY is the largest valid scroll offset.
func (v *View) MaxY() int {
	return max(0, v.total()-v.visibleHeight)
}

// SetVisibleHeight records the height of the visible band and re-clamps the
// offset against it.
func (v *View) SetVisibleHeight(h int) {
	v.visibleHeight = h
	v.clamp()
}

// Scroll moves the offset by delta; positive values reveal content further
// down. The result is clamped to [0, MaxY] for any delta.
func (v *View) Scroll(delta int) {
	v.clamp()
	switch {
	case delta > v.MaxY()-v.y:
		v.y = v.MaxY()
	case delta < -v.y:
		v.y = 0
	default:
		v.y += delta
	}
}

func (v *View) clamp() {
	if v.y < 0 {
		v.y = 0
	}
	if m := v.MaxY(); v.y > m {
		v.y = m
	}
}

// LinkAt returns the index of the first link element containing the document
// point (x, docY), or NoHover.
func (v *View) LinkAt(x, docY int) int {
	if v.doc == nil {
		return NoHover
	}
	for i, el := range v.doc.Elements {
		if el.IsLink && el.Rect.Contains(x, docY) {
			return i
		}
	}
	return NoHover
}

// HitTestClick returns the href of the link under a click, or "". screenY
// must already exclude any chrome above the content area.
func (v *View) HitTestClick(screenX, screenY int) string {
	i := v.LinkAt(screenX, screenY+v.y)
	if i == NoHover {
		return ""
	}
	return v.doc.Elements[i].Href
}

// UpdateHover sets the hover index from a pointer position measured from the
// top of the window, with topOffset the height of the chrome above the page.
func (v *View) UpdateHover(screenX, screenY, topOffset int) {
	v.hover = v.LinkAt(screenX, screenY-topOffset+v.y)
}

// ClearHover drops the hover state, e.g. when the pointer leaves the page.
func (v *View) ClearHover() {
	v.hover = NoHover
}
