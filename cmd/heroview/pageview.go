package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"herobrowser/pkg/page"
	"herobrowser/pkg/render"
	"herobrowser/pkg/viewport"
)

// fyne's desktop driver reports one wheel notch as this many units of DY.
const wheelNotch = 10

// pageView shows the engine's frame and turns pointer input into engine
// calls. Coordinates are widget-local, so the content area starts at y 0.
type pageView struct {
	widget.BaseWidget

	engine    *page.Engine
	backend   *render.GGBackend
	img       *canvas.Image
	wheelStep int

	// onLink is called with the raw href of a clicked link.
	onLink func(href string)
	// onHover is called with the href under the pointer, or "".
	onHover func(href string)
	// onResize is called after the width changed and before the repaint.
	onResize func(width int)
}

func newPageView(e *page.Engine, b *render.GGBackend, wheelStep int) *pageView {
	v := &pageView{
		engine:    e,
		backend:   b,
		img:       canvas.NewImageFromImage(b.Image()),
		wheelStep: wheelStep,
	}
	v.img.FillMode = canvas.ImageFillStretch
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *pageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *pageView) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (v *pageView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	widthChanged := w != v.backend.Width()
	v.backend.Resize(w, h)
	if widthChanged && v.onResize != nil {
		v.onResize(w)
	}
	v.repaint()
}

// repaint draws a fresh frame into the backend and hands it to the canvas.
func (v *pageView) repaint() {
	v.backend.Clear(v.engine.Theme().Background)
	v.engine.Render(v.backend.Height(), 0)
	v.img.Image = v.backend.Image()
	v.img.Refresh()
}

func (v *pageView) Tapped(ev *fyne.PointEvent) {
	href := v.engine.HitTestClick(int(ev.Position.X), int(ev.Position.Y))
	if href != "" && v.onLink != nil {
		v.onLink(href)
	}
}

func (v *pageView) Scrolled(ev *fyne.ScrollEvent) {
	delta := int(-ev.Scrolled.DY * float32(v.wheelStep) / wheelNotch)
	if delta == 0 {
		return
	}
	before := v.engine.ViewportY()
	v.engine.Scroll(delta)
	if v.engine.ViewportY() != before {
		v.repaint()
	}
}

func (v *pageView) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

func (v *pageView) MouseMoved(ev *desktop.MouseEvent) {
	before := v.engine.HoverIndex()
	v.engine.UpdateHover(int(ev.Position.X), int(ev.Position.Y), 0)
	if v.engine.HoverIndex() == before {
		return
	}
	if v.onHover != nil {
		v.onHover(v.hoverHref())
	}
	v.repaint()
}

func (v *pageView) MouseOut() {
	if v.engine.HoverIndex() == viewport.NoHover {
		return
	}
	v.engine.ClearHover()
	if v.onHover != nil {
		v.onHover("")
	}
	v.repaint()
}

func (v *pageView) Cursor() desktop.Cursor {
	if v.engine.HoverIndex() != viewport.NoHover {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (v *pageView) hoverHref() string {
	i := v.engine.HoverIndex()
	if i == viewport.NoHover {
		return ""
	}
	return v.engine.Document().Elements[i].Href
}
