package layout

import (
	"image/color"

	"golang.org/x/image/font"

	"herobrowser/pkg/text"
)

// Rect is an axis-aligned box. Element rects are in document coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Texture is a rasterised piece of text owned by exactly one Element.
type Texture interface {
	Size() (w, h int)
	Release()
}

// TextureFactory rasterises text into textures.
type TextureFactory interface {
	NewTextTexture(s string, face font.Face, c color.Color) (Texture, error)
}

// FaceSet provides the resolved face and pixel size of each role.
type FaceSet interface {
	Face(role text.Role) font.Face
	Size(role text.Role) int
}

// Element is one placed word, code line or link.
type Element struct {
	// Texture is nil when no face was available for the element's role.
	Texture Texture
	Rect    Rect
	Text    string
	Role    text.Role

	IsLink   bool
	Href     string
	IsHeader bool
	// IsImage is reserved; images are not supported.
	IsImage  bool
	FontSize int
}

// Release frees the element's texture. Calling it again is a no-op.
func (e *Element) Release() {
	if e.Texture != nil {
		e.Texture.Release()
		e.Texture = nil
	}
}

type BackdropKind int

const (
	// BackdropCode is the filled panel behind a pre block.
	BackdropCode BackdropKind = iota
	// BackdropBullet is the square marker of a list item.
	BackdropBullet
)

func (k BackdropKind) String() string {
	switch k {
	case BackdropCode:
		return "code"
	case BackdropBullet:
		return "bullet"
	}
	return "unknown"
}

// Backdrop is a filled rectangle painted beneath the elements that follow it.
type Backdrop struct {
	Kind BackdropKind
	Rect Rect
	// Before is the index of the first element painted on top of the
	// backdrop; it equals len(Elements) when nothing follows.
	Before int
}

// Document is the result of one layout pass.
type Document struct {
	Elements           []*Element
	Backdrops          []Backdrop
	TotalContentHeight int
}

// Release frees every element texture and empties the document.
func (d *Document) Release() {
	if d == nil {
		return
	}
	for _, el := range d.Elements {
		el.Release()
	}
	d.Elements = nil
	d.Backdrops = nil
	d.TotalContentHeight = 0
}

// TextColors are the ink colours text textures are rasterised with.
type TextColors struct {
	Primary color.Color
	Link    color.Color
	Header  color.Color
	Code    color.Color
}
