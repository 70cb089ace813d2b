// Package render paints laid-out documents onto a drawing backend.
package render

import (
	"image/color"

	"herobrowser/pkg/layout"
)

// Backend is the drawing surface the painter issues calls against. Textures
// it creates are only valid for DrawTexture on the same backend.
type Backend interface {
	layout.TextureFactory

	FillRect(r layout.Rect, c color.Color)
	DrawLine(x1, y1, x2, y2 int, c color.Color)
	DrawTexture(t layout.Texture, dst layout.Rect)
}
