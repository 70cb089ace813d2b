package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"herobrowser/pkg/config"
	"herobrowser/pkg/page"
	"herobrowser/pkg/render"
	"herobrowser/pkg/resource"
)

const windowTitle = "HEROBrowser"

// browser is the window shell around one page engine. Every method runs on
// the fyne event goroutine except the body of a fetch.
type browser struct {
	ctx     context.Context
	cancel  context.CancelFunc
	win     fyne.Window
	log     *zap.Logger
	fetcher resource.Fetcher
	engine  *page.Engine
	view    *pageView
	sess    *session

	markup     string
	searchHits []int
	searchPos  int

	address  *widget.Entry
	search   *widget.Entry
	status   *widget.Label
	backBtn  *widget.Button
	fwdBtn   *widget.Button
	starBtn  *widget.Button
	marksBtn *widget.Button
}

func newBrowser(ctx context.Context, a fyne.App, cfg *config.Config, log *zap.Logger) (*browser, error) {
	pc, err := cfg.PageConfig()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare page engine: %w", err)
	}

	visible := cfg.Viewer.Height - cfg.Viewer.TopBarHeight - cfg.Viewer.StatusBarHeight
	backend := render.NewGGBackend(cfg.Viewer.Width, max(visible, 1))
	engine := page.New(backend, pc, log.Named("page"))

	b := &browser{
		win:     a.NewWindow(windowTitle),
		log:     log,
		fetcher: resource.NewFetcher(log.Named("fetch"), cfg.FetcherOptions()...),
		engine:  engine,
		view:    newPageView(engine, backend, cfg.Viewer.WheelStep),
		sess:    newSession(cfg.Viewer.Home, cfg.Bookmarks),
	}
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.view.onLink = func(href string) { b.navigate(b.sess.link(href), true) }
	b.view.onHover = b.showHover
	b.view.onResize = b.relayout

	b.buildChrome()
	b.win.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))
	b.win.SetOnClosed(b.close)
	return b, nil
}

func (b *browser) buildChrome() {
	b.address = widget.NewEntry()
	b.address.SetPlaceHolder("Enter hero:// address or URL...")
	b.address.OnSubmitted = func(s string) { b.navigate(b.sess.target(s), true) }

	b.search = widget.NewEntry()
	b.search.SetPlaceHolder("Find in page")
	b.search.OnSubmitted = b.find
	b.search.OnChanged = func(string) { b.searchHits = nil }

	b.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), b.goBack)
	b.fwdBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), b.goForward)
	home := widget.NewButtonWithIcon("", theme.HomeIcon(), func() { b.navigate(b.sess.home, true) })
	reload := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), b.reload)
	b.starBtn = widget.NewButton("☆", b.toggleBookmark)
	b.marksBtn = widget.NewButtonWithIcon("", theme.ListIcon(), b.showBookmarks)

	nav := container.NewHBox(b.backBtn, b.fwdBtn, home, reload)
	tools := container.NewHBox(b.starBtn, b.marksBtn, container.NewGridWrap(fyne.NewSize(180, b.search.MinSize().Height), b.search))
	topBar := container.NewBorder(nil, nil, nav, tools, b.address)

	b.status = widget.NewLabel("Ready")
	b.win.SetContent(container.NewBorder(topBar, b.status, nil, nil, b.view))

	c := b.win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyD, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { b.toggleBookmark() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyL, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { c.Focus(b.address) })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyF, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) { c.Focus(b.search) })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyLeft, Modifier: fyne.KeyModifierAlt}, func(fyne.Shortcut) { b.goBack() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyRight, Modifier: fyne.KeyModifierAlt}, func(fyne.Shortcut) { b.goForward() })
	c.SetOnTypedKey(b.typedKey)

	b.updateButtons()
}

// typedKey handles keys that reach the window while no input is focused.
func (b *browser) typedKey(ev *fyne.KeyEvent) {
	step := b.view.backend.Height()
	switch ev.Name {
	case fyne.KeyF5:
		b.reload()
	case fyne.KeyDown:
		b.scroll(b.view.wheelStep)
	case fyne.KeyUp:
		b.scroll(-b.view.wheelStep)
	case fyne.KeyPageDown, fyne.KeySpace:
		b.scroll(step)
	case fyne.KeyPageUp:
		b.scroll(-step)
	case fyne.KeyHome:
		b.scroll(-b.engine.TotalContentHeight())
	case fyne.KeyEnd:
		b.scroll(b.engine.TotalContentHeight())
	}
}

func (b *browser) scroll(delta int) {
	b.engine.Scroll(delta)
	b.view.repaint()
}

// navigate loads addr in the background and shows it when it arrives, unless
// a newer navigation started in the meantime.
func (b *browser) navigate(addr string, record bool) {
	ticket := b.sess.begin()
	b.status.SetText("Loading " + addr + "...")
	b.log.Debug("Navigating", zap.String("address", addr), zap.Bool("record", record))

	go func() {
		markup := resource.Load(b.ctx, b.fetcher, addr)
		if b.ctx.Err() != nil {
			return
		}
		fyne.Do(func() { b.show(ticket, addr, markup, record) })
	}()
}

func (b *browser) show(ticket uint64, addr, markup string, record bool) {
	if !b.sess.commit(ticket, addr, record) {
		b.log.Debug("Dropping superseded page", zap.String("address", addr))
		return
	}
	b.markup = markup
	b.searchHits = nil
	b.engine.Layout(markup, b.view.backend.Width())
	b.view.repaint()

	b.address.SetText(addr)
	b.win.SetTitle(windowTitle + " - " + addr)
	b.status.SetText("Loaded")
	b.updateButtons()
	b.log.Info("Page loaded",
		zap.String("address", addr),
		zap.Int("elements", len(b.engine.Document().Elements)),
		zap.Int("height", b.engine.TotalContentHeight()))
}

// relayout lays the current page out again for a new width. Scroll and hover
// start over, the same as on navigation.
func (b *browser) relayout(width int) {
	if b.markup == "" {
		return
	}
	b.engine.Layout(b.markup, width)
	b.searchHits = nil
}

func (b *browser) reload() {
	if b.sess.current == "" {
		return
	}
	b.navigate(b.sess.current, false)
}

func (b *browser) goBack() {
	if addr := b.sess.back(); addr != "" {
		b.navigate(addr, false)
	}
	b.updateButtons()
}

func (b *browser) goForward() {
	if addr := b.sess.forward(); addr != "" {
		b.navigate(addr, false)
	}
	b.updateButtons()
}

func (b *browser) toggleBookmark() {
	if b.sess.current == "" {
		return
	}
	if b.sess.toggleBookmark() {
		b.status.SetText("Bookmarked " + b.sess.current)
	} else {
		b.status.SetText("Bookmark removed")
	}
	b.updateButtons()
}

func (b *browser) showBookmarks() {
	marks := b.sess.bookmarks.List()
	items := make([]*fyne.MenuItem, 0, len(marks))
	for _, m := range marks {
		url := m.URL
		items = append(items, fyne.NewMenuItem(m.Title, func() { b.navigate(url, true) }))
	}
	if len(items) == 0 {
		empty := fyne.NewMenuItem("No bookmarks", nil)
		empty.Disabled = true
		items = append(items, empty)
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(b.marksBtn)
	pos = pos.Add(fyne.NewPos(0, b.marksBtn.Size().Height))
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("Bookmarks", items...), b.win.Canvas(), pos)
}

// find reveals the next element containing term. Submitting the same term
// again steps through the matches.
func (b *browser) find(term string) {
	if b.searchHits == nil {
		b.searchHits = b.engine.Search(term)
		b.searchPos = -1
	}
	if len(b.searchHits) == 0 {
		b.status.SetText(fmt.Sprintf("No matches for %q", term))
		b.searchHits = nil
		return
	}
	b.searchPos = (b.searchPos + 1) % len(b.searchHits)
	b.engine.Reveal(b.searchHits[b.searchPos])
	b.view.repaint()
	b.status.SetText(fmt.Sprintf("Match %d of %d", b.searchPos+1, len(b.searchHits)))
}

func (b *browser) showHover(href string) {
	if href == "" {
		b.status.SetText("Loaded")
		return
	}
	b.status.SetText(b.sess.link(href))
}

func (b *browser) updateButtons() {
	setEnabled(b.backBtn, b.sess.history.CanGoBack())
	setEnabled(b.fwdBtn, b.sess.history.CanGoForward())
	setEnabled(b.starBtn, b.sess.current != "")
	if b.sess.bookmarked() {
		b.starBtn.SetText("★")
	} else {
		b.starBtn.SetText("☆")
	}
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (b *browser) close() {
	b.cancel()
	if err := b.engine.Close(); err != nil {
		b.log.Warn("Unable to release page engine", zap.Error(err))
	}
}

// run shows the window with start loading and blocks until it is closed.
func (b *browser) run(start string) {
	b.win.Canvas().Focus(b.address)
	b.navigate(b.sess.target(start), true)
	b.win.ShowAndRun()
}
