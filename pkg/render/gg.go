package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/text"
)

// GGBackend draws into a gg raster context. Text textures are separate RGBA
// bitmaps composited onto the frame with DrawTexture.
type GGBackend struct {
	context *gg.Context
}

func NewGGBackend(width, height int) *GGBackend {
	return &GGBackend{context: gg.NewContext(width, height)}
}

// NewGGBackendForImage draws directly into target.
func NewGGBackendForImage(target *image.RGBA) *GGBackend {
	return &GGBackend{context: gg.NewContextForRGBA(target)}
}

// Resize replaces the frame with a blank one of the given size. Textures
// created earlier stay valid.
func (b *GGBackend) Resize(width, height int) {
	if width == b.context.Width() && height == b.context.Height() {
		return
	}
	b.context = gg.NewContext(width, height)
}

// Clear fills the whole frame with c.
func (b *GGBackend) Clear(c color.Color) {
	b.context.SetColor(c)
	b.context.Clear()
}

func (b *GGBackend) Width() int  { return b.context.Width() }
func (b *GGBackend) Height() int { return b.context.Height() }

// Image returns the current frame.
func (b *GGBackend) Image() image.Image {
	return b.context.Image()
}

func (b *GGBackend) SavePNG(filename string) error {
	return b.context.SavePNG(filename)
}

func (b *GGBackend) NewTextTexture(s string, face font.Face, c color.Color) (layout.Texture, error) {
	if face == nil {
		return nil, errors.New("no font face")
	}
	w, h := text.Measure(face, s, 0)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("text %q has empty extent %dx%d", s, w, h)
	}
	dc := gg.NewContext(w, h)
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawString(s, 0, float64(text.Ascent(face)))
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New("unexpected texture image type")
	}
	return &ggTexture{img: img}, nil
}

func (b *GGBackend) FillRect(r layout.Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	b.context.SetColor(c)
	b.context.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	b.context.Fill()
}

func (b *GGBackend) DrawLine(x1, y1, x2, y2 int, c color.Color) {
	b.context.SetColor(c)
	b.context.SetLineWidth(1)
	// offset by half a pixel so a one pixel line covers exactly one pixel row
	b.context.DrawLine(float64(x1)+0.5, float64(y1)+0.5, float64(x2)+0.5, float64(y2)+0.5)
	b.context.Stroke()
}

func (b *GGBackend) DrawTexture(t layout.Texture, dst layout.Rect) {
	tex, ok := t.(*ggTexture)
	if !ok || tex.img == nil {
		return
	}
	b.context.DrawImage(tex.img, dst.X, dst.Y)
}

type ggTexture struct {
	img *image.RGBA
}

func (t *ggTexture) Size() (int, int) {
	if t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *ggTexture) Release() {
	t.img = nil
}
