package text

import (
	"golang.org/x/image/font"
)

// Measure returns the pixel width and height of s drawn with face. The height
// is the face's line height, matching the bitmap a rasterised word occupies.
//
// A nil face yields a rough estimate based on size so layout can still place
// the word; nothing is drawn for it later.
func Measure(face font.Face, s string, size int) (width, height int) {
	if face == nil {
		return int(float64(len(s)) * float64(size) * 0.6), int(float64(size) * 1.2)
	}
	width = font.MeasureString(face, s).Ceil()
	height = face.Metrics().Height.Ceil()
	return width, height
}

// Ascent returns the distance from the top of a line box to the baseline.
func Ascent(face font.Face) int {
	if face == nil {
		return 0
	}
	return face.Metrics().Ascent.Ceil()
}
