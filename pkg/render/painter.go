package render

import (
	"image/color"

	"herobrowser/pkg/layout"
)

const (
	hoverPadX = 4
	hoverPadY = 2

	minThumbHeight = 30
	trackInset     = 12
	trackWidth     = 8
	thumbInset     = 11
	thumbWidth     = 6
)

// Frame is the viewport state a document is painted with.
type Frame struct {
	ViewportY int
	// Hover is the index of the hovered element, or -1.
	Hover         int
	VisibleHeight int
	// TopOffset is the height of the fixed chrome above the page.
	TopOffset int
}

// Painter issues the draw calls for the visible part of a document.
type Painter struct {
	backend Backend
	theme   Theme
	metrics layout.Metrics
}

func NewPainter(backend Backend, theme Theme, metrics layout.Metrics) *Painter {
	return &Painter{backend: backend, theme: theme, metrics: metrics}
}

func (p *Painter) Theme() Theme { return p.theme }

// Paint draws doc. Elements are y-ordered, so drawing stops at the first one
// below the visible band.
func (p *Painter) Paint(doc *layout.Document, f Frame) {
	if doc == nil {
		return
	}
	next := 0
	for i, el := range doc.Elements {
		next = p.backdrops(doc, next, i, f)

		screenY := el.Rect.Y - f.ViewportY + f.TopOffset
		if screenY+el.Rect.H < f.TopOffset {
			continue
		}
		if screenY > f.VisibleHeight {
			break
		}
		dst := layout.Rect{X: el.Rect.X, Y: screenY, W: el.Rect.W, H: el.Rect.H}
		hovered := el.IsLink && f.Hover == i

		if hovered {
			p.backend.FillRect(layout.Rect{
				X: dst.X - hoverPadX,
				Y: dst.Y - hoverPadY,
				W: dst.W + 2*hoverPadX,
				H: dst.H + 2*hoverPadY,
			}, p.theme.LinkHoverBG)
		}
		if el.Texture != nil {
			p.backend.DrawTexture(el.Texture, dst)
		}
		if el.IsLink {
			var line color.Color = p.theme.LinkLine
			if hovered {
				line = p.theme.TextLink
			}
			y := dst.Y + dst.H - 1
			p.backend.DrawLine(dst.X, y, dst.X+dst.W, y, line)
		}
	}
	p.backdrops(doc, next, len(doc.Elements), f)
	p.scrollbar(doc.TotalContentHeight, f)
}

// backdrops paints the backdrops anchored at or before element index upTo,
// starting from next, and returns the index of the first one left.
func (p *Painter) backdrops(doc *layout.Document, next, upTo int, f Frame) int {
	for ; next < len(doc.Backdrops) && doc.Backdrops[next].Before <= upTo; next++ {
		bd := doc.Backdrops[next]
		screenY := bd.Rect.Y - f.ViewportY + f.TopOffset
		if screenY+bd.Rect.H < f.TopOffset || screenY > f.VisibleHeight {
			continue
		}
		var c color.Color = p.theme.CodeBG
		if bd.Kind == layout.BackdropBullet {
			c = p.theme.Bullet
		}
		p.backend.FillRect(layout.Rect{X: bd.Rect.X, Y: screenY, W: bd.Rect.W, H: bd.Rect.H}, c)
	}
	return next
}

// ScrollThumb returns the thumb height and y for a document of height total.
// ok is false when the document fits and no scrollbar is drawn.
func ScrollThumb(total, viewportY, visibleHeight, topOffset int) (thumbY, thumbH int, ok bool) {
	if total <= visibleHeight {
		return 0, 0, false
	}
	thumbH = max(minThumbHeight, visibleHeight*visibleHeight/total)
	pct := float64(viewportY) / float64(total-visibleHeight)
	thumbY = topOffset + int(pct*float64(visibleHeight-topOffset-thumbH))
	return thumbY, thumbH, true
}

func (p *Painter) scrollbar(total int, f Frame) {
	thumbY, thumbH, ok := ScrollThumb(total, f.ViewportY, f.VisibleHeight, f.TopOffset)
	if !ok {
		return
	}
	anchor := p.metrics.ScrollbarAnchorX
	p.backend.FillRect(layout.Rect{X: anchor - trackInset, Y: f.TopOffset, W: trackWidth, H: f.VisibleHeight - f.TopOffset}, p.theme.ScrollbarTrack)
	p.backend.FillRect(layout.Rect{X: anchor - thumbInset, Y: thumbY, W: thumbWidth, H: thumbH}, p.theme.ScrollbarThumb)
}
