// Package page ties layout, viewport state and painting into the engine a
// browser shell drives: one document at a time, replaced wholesale on every
// navigation.
//
// An Engine is not safe for concurrent use. Call it from the goroutine that
// runs the render loop.
package page

import (
	"fmt"
	"image/color"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/render"
	"herobrowser/pkg/text"
	"herobrowser/pkg/viewport"
)

// Config bundles what an Engine is built from.
type Config struct {
	Metrics layout.Metrics
	Fonts   text.FontConfig
	Theme   render.Theme
	// Loader overrides how font candidates are opened.
	Loader text.Loader
}

func DefaultConfig() Config {
	return Config{
		Metrics: layout.DefaultMetrics(),
		Fonts:   text.DefaultFontConfig(),
		Theme:   render.DefaultTheme(),
	}
}

type Engine struct {
	backend render.Backend
	faces   *text.Faces
	layout  *layout.Engine
	painter *render.Painter
	view    *viewport.View
	doc     *layout.Document
	log     *zap.Logger
}

// New resolves the configured fonts and returns an engine with an empty
// document.
func New(backend render.Backend, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	faces := text.NewResolver(log.Named("fonts"), text.WithLoader(cfg.Loader)).ResolveAll(cfg.Fonts)
	if faces.Face(text.RoleBody) == nil {
		log.Error("Failed to load body font, page text will not be drawn")
	}
	return &Engine{
		backend: backend,
		faces:   faces,
		layout:  layout.NewEngine(cfg.Metrics, faces, backend, cfg.Theme.TextColors(), log.Named("layout")),
		painter: render.NewPainter(backend, cfg.Theme, cfg.Metrics),
		view:    viewport.New(cfg.Metrics.DefaultVisibleHeight),
		doc:     &layout.Document{},
		log:     log,
	}
}

// Layout replaces the current document with markup laid out for
// viewportWidth. Resources of the previous document are released first.
func (e *Engine) Layout(markup string, viewportWidth int) {
	e.Clear()
	e.doc = e.layout.Layout(markup, viewportWidth)
	e.view.Attach(e.doc)
}

// Clear releases every element resource and resets scroll and hover.
func (e *Engine) Clear() {
	e.doc.Release()
	e.view.Attach(e.doc)
}

// Close clears the document and closes the fonts. The engine must not be
// used afterwards.
func (e *Engine) Close() (err error) {
	e.Clear()
	if er := e.faces.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("unable to close fonts: %w", er))
	}
	return err
}

func (e *Engine) Scroll(delta int) {
	e.view.Scroll(delta)
}

// HitTestClick returns the href under a click at content-area coordinates.
func (e *Engine) HitTestClick(x, y int) string {
	return e.view.HitTestClick(x, y)
}

func (e *Engine) UpdateHover(x, y, topOffset int) {
	e.view.UpdateHover(x, y, topOffset)
}

func (e *Engine) ClearHover() {
	e.view.ClearHover()
}

// Render paints the visible part of the document. visibleHeight is also what
// later scrolling is clamped against.
func (e *Engine) Render(visibleHeight, topOffset int) {
	e.view.SetVisibleHeight(visibleHeight)
	e.painter.Paint(e.doc, render.Frame{
		ViewportY:     e.view.Y(),
		Hover:         e.view.HoverIndex(),
		VisibleHeight: visibleHeight,
		TopOffset:     topOffset,
	})
}

// RenderUIText draws a line of chrome text in the body face at (x, y). The
// texture lives only for this call.
func (e *Engine) RenderUIText(s string, x, y int, c color.Color) {
	face := e.faces.Face(text.RoleBody)
	if face == nil || s == "" {
		return
	}
	tex, err := e.backend.NewTextTexture(s, face, c)
	if err != nil {
		e.log.Debug("Unable to rasterise UI text", zap.String("text", s), zap.Error(err))
		return
	}
	defer tex.Release()
	w, h := tex.Size()
	e.backend.DrawTexture(tex, layout.Rect{X: x, Y: y, W: w, H: h})
}

// Search returns the indices of elements whose text contains term, ignoring
// case. An empty term matches nothing.
func (e *Engine) Search(term string) []int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var hits []int
	for i, el := range e.doc.Elements {
		if strings.Contains(strings.ToLower(el.Text), term) {
			hits = append(hits, i)
		}
	}
	return hits
}

// Reveal scrolls so that element i starts at the top of the visible band, as
// far as clamping allows.
func (e *Engine) Reveal(i int) {
	if i < 0 || i >= len(e.doc.Elements) {
		return
	}
	e.view.Scroll(e.doc.Elements[i].Rect.Y - e.view.Y())
}

// Document returns the current document. It is valid until the next Layout
// or Clear.
func (e *Engine) Document() *layout.Document { return e.doc }

func (e *Engine) ViewportY() int          { return e.view.Y() }
func (e *Engine) HoverIndex() int         { return e.view.HoverIndex() }
func (e *Engine) TotalContentHeight() int { return e.doc.TotalContentHeight }
func (e *Engine) Metrics() layout.Metrics { return e.layout.Metrics() }
func (e *Engine) Theme() render.Theme     { return e.painter.Theme() }
