package page

import (
	"fmt"
	"image"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/render"
	"herobrowser/pkg/text"
)

// ImageOptions describes one headless frame.
type ImageOptions struct {
	Width, Height int
	// ScrollY is applied as a single scroll delta after layout.
	ScrollY int
	// TopOffset reserves blank rows above the page, as a browser's chrome would.
	TopOffset int
	// Hover, when set, hovers the pointer at (HoverX, HoverY) window
	// coordinates before painting.
	Hover          bool
	HoverX, HoverY int

	// Chrome draws an address bar of height TopOffset and a status bar of
	// height StatusBarHeight over the page.
	Chrome          bool
	StatusBarHeight int
	Address         string
	Status          string
}

// RenderImage lays out markup and paints a single frame of it.
func RenderImage(markup string, opts ImageOptions, cfg Config, log *zap.Logger) (img image.Image, err error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if log == nil {
		log = zap.NewNop()
	}

	backend := render.NewGGBackend(opts.Width, opts.Height)
	backend.Clear(cfg.Theme.Background)

	e := New(backend, cfg, log)
	defer func() {
		if er := e.Close(); er != nil {
			err = multierr.Append(err, er)
		}
	}()

	visible := opts.Height
	if opts.Chrome {
		visible -= opts.StatusBarHeight
	}
	e.Layout(markup, opts.Width)
	e.view.SetVisibleHeight(visible)
	e.Scroll(opts.ScrollY)
	if opts.Hover {
		e.UpdateHover(opts.HoverX, opts.HoverY, opts.TopOffset)
	}
	e.Render(visible, opts.TopOffset)
	if opts.Chrome {
		e.paintChrome(opts)
	}

	log.Debug("Rendered frame",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("viewport_y", e.ViewportY()),
		zap.Int("content_height", e.TotalContentHeight()))
	return backend.Image(), nil
}

const chromePadX = 10

func (e *Engine) paintChrome(opts ImageOptions) {
	theme := e.Theme()
	lineH := e.faces.Size(text.RoleBody) * 6 / 5

	if opts.TopOffset > 0 {
		e.backend.FillRect(layout.Rect{W: opts.Width, H: opts.TopOffset}, theme.CodeBG)
		e.backend.DrawLine(0, opts.TopOffset-1, opts.Width, opts.TopOffset-1, theme.ScrollbarThumb)
		e.RenderUIText(opts.Address, chromePadX, (opts.TopOffset-lineH)/2, theme.TextPrimary)
	}
	if opts.StatusBarHeight > 0 {
		y := opts.Height - opts.StatusBarHeight
		e.backend.FillRect(layout.Rect{Y: y, W: opts.Width, H: opts.StatusBarHeight}, theme.CodeBG)
		e.RenderUIText(opts.Status, chromePadX, y+(opts.StatusBarHeight-lineH)/2, theme.TextMuted)
	}
}
