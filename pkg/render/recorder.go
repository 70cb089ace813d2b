package render

import (
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/font"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/text"
)

type OpKind int

const (
	OpFill OpKind = iota
	OpLine
	OpTexture
)

func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpLine:
		return "line"
	case OpTexture:
		return "texture"
	}
	return "unknown"
}

// Op is one recorded draw call.
type Op struct {
	Kind  OpKind
	Rect  layout.Rect
	Color color.RGBA
	// Text is the texture content for OpTexture.
	Text string
}

// Recorder is a Backend that records draw calls instead of rasterising them.
// It also tracks texture ownership so leaks and double releases show up.
type Recorder struct {
	Ops []Op

	created  int
	released int
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewTextTexture(s string, face font.Face, _ color.Color) (layout.Texture, error) {
	w, h := text.Measure(face, s, 0)
	r.created++
	return &recordedTexture{owner: r, text: s, w: w, h: h}, nil
}

func (r *Recorder) FillRect(rect layout.Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect, Color: toRGBA(c)})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 int, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Rect: layout.Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, Color: toRGBA(c)})
}

func (r *Recorder) DrawTexture(t layout.Texture, dst layout.Rect) {
	op := Op{Kind: OpTexture, Rect: dst}
	if rt, ok := t.(*recordedTexture); ok {
		op.Text = rt.text
	}
	r.Ops = append(r.Ops, op)
}

// Reset forgets recorded ops but keeps texture accounting.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Live reports how many textures are created and not yet released.
func (r *Recorder) Live() int {
	return r.created - r.released
}

// Released reports how many textures have been released.
func (r *Recorder) Released() int {
	return r.released
}

// Dump writes ops one per line.
func (r *Recorder) Dump(w io.Writer) error {
	for i, op := range r.Ops {
		line := fmt.Sprintf("%4d %-7s x=%d y=%d w=%d h=%d #%02x%02x%02x%02x", i, op.Kind,
			op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H, op.Color.R, op.Color.G, op.Color.B, op.Color.A)
		if op.Kind == OpTexture {
			line = fmt.Sprintf("%4d %-7s x=%d y=%d w=%d h=%d %q", i, op.Kind,
				op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H, op.Text)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type recordedTexture struct {
	owner    *Recorder
	text     string
	w, h     int
	released bool
}

func (t *recordedTexture) Size() (int, int) { return t.w, t.h }

func (t *recordedTexture) Release() {
	if t.released {
		panic(fmt.Sprintf("texture %q released twice", t.text))
	}
	t.released = true
	t.owner.released++
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
