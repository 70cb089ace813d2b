// Package layout turns page markup into positioned elements.
//
// Layout is a single forward pass: blocks come out of the markup tokenizer in
// document order and words are placed with a running cursor. There is no
// intermediate tree, so the output order is the paint order and element y
// coordinates never decrease.
package layout

import (
	"image/color"
	"strings"

	"go.uber.org/zap"

	"herobrowser/pkg/markup"
	"herobrowser/pkg/text"
)

// Engine lays out documents with a fixed set of faces, metrics and colours.
type Engine struct {
	metrics  Metrics
	faces    FaceSet
	textures TextureFactory
	colors   TextColors
	log      *zap.Logger
}

func NewEngine(m Metrics, faces FaceSet, textures TextureFactory, colors TextColors, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{metrics: m, faces: faces, textures: textures, colors: colors, log: log}
}

func (e *Engine) Metrics() Metrics { return e.metrics }

// cursor is the pen position while a document is being laid out.
type cursor struct {
	x, y int
	maxX int
}

// word is one placement request for place.
type word struct {
	text     string
	role     text.Role
	color    color.Color
	link     bool
	href     string
	header   bool
	wrapMaxX int
}

// Layout lays markup out for a viewport viewportWidth pixels wide and returns
// the new document. The caller owns the document and must Release it.
func (e *Engine) Layout(markupText string, viewportWidth int) *Document {
	m := e.metrics
	contentWidth := min(m.MaxLineWidth, viewportWidth-2*m.MarginX)
	doc := &Document{}
	c := &cursor{x: m.MarginX, y: m.MarginY, maxX: m.MarginX + contentWidth}

	counts := make(map[markup.BlockType]int)
	tok := markup.NewTokenizer(markupText)
	for b := tok.Next(); b.Type != markup.BlockEOF; b = tok.Next() {
		counts[b.Type]++
		switch b.Type {
		case markup.BlockHeading1:
			e.heading(doc, c, b.Text, text.RoleHeaderLarge, m.H1GapBefore, m.HeaderLargeHeight+m.H1GapAfter)
		case markup.BlockHeading2:
			e.heading(doc, c, b.Text, text.RoleHeader, m.H2GapBefore, m.HeaderHeight+m.H2GapAfter)
		case markup.BlockPre:
			e.pre(doc, c, b.Text, contentWidth)
		case markup.BlockList:
			e.list(doc, c, b.Items)
		case markup.BlockParagraph:
			e.paragraph(doc, c, b.Text)
		case markup.BlockLink:
			if strings.TrimSpace(b.Text) != "" {
				e.standaloneLink(doc, c, b.Text, b.Href)
			}
		case markup.BlockWord:
			e.place(doc, c, word{text: b.Text, role: text.RoleBody, color: e.colors.Primary})
		}
	}

	doc.TotalContentHeight = c.y + m.BottomMargin
	e.log.Debug("Layout complete",
		zap.Int("viewport_width", viewportWidth),
		zap.Int("elements", len(doc.Elements)),
		zap.Int("backdrops", len(doc.Backdrops)),
		zap.Int("height", doc.TotalContentHeight),
		zap.Int("headings", counts[markup.BlockHeading1]+counts[markup.BlockHeading2]),
		zap.Int("paragraphs", counts[markup.BlockParagraph]),
		zap.Int("lists", counts[markup.BlockList]),
		zap.Int("code_blocks", counts[markup.BlockPre]))
	return doc
}

func (e *Engine) heading(doc *Document, c *cursor, inner string, role text.Role, gapBefore, advance int) {
	m := e.metrics
	if len(doc.Elements) > 0 {
		c.y += gapBefore
	}
	c.x = m.MarginX
	e.inline(doc, c, markup.ScanInline(inner), role, e.colors.Header, true)
	c.y += advance
	c.x = m.MarginX
}

func (e *Engine) paragraph(doc *Document, c *cursor, inner string) {
	m := e.metrics
	if len(doc.Elements) > 0 {
		c.y += m.ParagraphGapBefore
	}
	c.x = m.MarginX
	e.inline(doc, c, markup.ScanInline(inner), text.RoleBody, e.colors.Primary, false)
	c.y += m.LineHeight + m.ParagraphGapAfter
	c.x = m.MarginX
}

func (e *Engine) pre(doc *Document, c *cursor, code string, contentWidth int) {
	m := e.metrics
	c.y += m.PreGap
	c.x = m.MarginX
	start := c.y
	anchor := len(doc.Elements)

	role := text.RoleMono
	if e.faces.Face(role) == nil {
		role = text.RoleBody
	}
	for _, line := range preLines(code) {
		c.x = m.MarginX + m.PreIndent
		if line != "" {
			e.place(doc, c, word{text: line, role: role, color: e.colors.Code, wrapMaxX: c.maxX - 2*m.CodePadX})
		}
		c.y += m.LineHeight - m.PreLineShrink
	}

	doc.Backdrops = append(doc.Backdrops, Backdrop{
		Kind:   BackdropCode,
		Rect:   Rect{X: m.MarginX - m.CodePadX, Y: start - m.CodePadY, W: contentWidth + 2*m.CodePadX, H: c.y - start + m.CodePadY},
		Before: anchor,
	})

	c.y += m.PreGap
	c.x = m.MarginX
}

// preLines splits code into physical lines. A trailing newline does not
// start another line.
func preLines(code string) []string {
	if code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (e *Engine) list(doc *Document, c *cursor, items []string) {
	m := e.metrics
	c.y += m.ListGap
	for _, item := range items {
		c.x = m.MarginX + m.ListIndent
		doc.Backdrops = append(doc.Backdrops, Backdrop{
			Kind:   BackdropBullet,
			Rect:   Rect{X: m.MarginX + m.BulletOffsetX, Y: c.y + m.BulletOffsetY, W: m.BulletSize, H: m.BulletSize},
			Before: len(doc.Elements),
		})
		e.inline(doc, c, markup.ScanListItem(item), text.RoleBody, e.colors.Primary, false)
		c.y += m.LineHeight + m.ListItemGap
	}
	c.y += m.ListGap
	c.x = m.MarginX
}

func (e *Engine) inline(doc *Document, c *cursor, runs []markup.Run, role text.Role, ink color.Color, header bool) {
	for _, r := range runs {
		if r.Type == markup.RunLink {
			e.place(doc, c, e.linkWord(r.Text, r.Href, role, header))
			continue
		}
		e.place(doc, c, word{text: r.Text, role: role, color: ink, header: header})
	}
}

// standaloneLink places a top-level anchor. Without a target its text is
// placed as body words.
func (e *Engine) standaloneLink(doc *Document, c *cursor, s, href string) {
	if strings.TrimSpace(href) == "" {
		e.inline(doc, c, markup.ScanInline(s), text.RoleBody, e.colors.Primary, false)
		return
	}
	e.place(doc, c, e.linkWord(s, href, text.RoleBody, false))
}

func (e *Engine) linkWord(s, href string, role text.Role, header bool) word {
	return word{text: s, role: role, color: e.colors.Link, link: true, href: href, header: header}
}

// place applies the word-wrap rule and appends the element. The cursor only
// wraps when it has moved past the left margin, so an overlong word on an
// empty line is placed anyway and overflows.
func (e *Engine) place(doc *Document, c *cursor, w word) {
	m := e.metrics
	face := e.faces.Face(w.role)
	size := e.faces.Size(w.role)
	width, height := text.Measure(face, w.text, size)

	maxX := c.maxX
	if w.wrapMaxX != 0 {
		maxX = w.wrapMaxX
	}
	if c.x+width > maxX && c.x > m.MarginX {
		c.x = m.MarginX
		c.y += m.LineHeight
	}

	el := &Element{
		Rect:     Rect{X: c.x, Y: c.y, W: width, H: height},
		Text:     w.text,
		Role:     w.role,
		IsLink:   w.link,
		Href:     w.href,
		IsHeader: w.header,
		FontSize: size,
	}
	if face != nil && e.textures != nil {
		tex, err := e.textures.NewTextTexture(w.text, face, w.color)
		if err != nil {
			e.log.Warn("Unable to rasterise text, element will not be drawn", zap.String("text", w.text), zap.Error(err))
		} else {
			el.Texture = tex
		}
	}
	doc.Elements = append(doc.Elements, el)
	c.x += width + m.WordGap
}
