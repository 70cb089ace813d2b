// Package visualtest compares rendered frames pixel by pixel.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Result of comparing two frames.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	// MaxDifference is the largest 8-bit channel delta seen.
	MaxDifference int
	// Bounds encloses every differing pixel, empty when none differ.
	Bounds image.Rectangle
}

type Options struct {
	// Tolerance is the largest channel delta (0-255) still counted as equal.
	Tolerance int
	// FuzzyRadius, when > 0, lets a pixel match any expected pixel this close.
	FuzzyRadius int
	// MaxDifferentPercent, when > 0, passes frames with at most this share of
	// differing pixels.
	MaxDifferentPercent float64
}

func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Compare matches actual against expected. Frames of different sizes are an
// error.
func Compare(actual, expected image.Image, opts Options) (*Result, error) {
	b := actual.Bounds()
	if b != expected.Bounds() {
		return &Result{}, fmt.Errorf("image dimensions differ: actual=%v, expected=%v", b, expected.Bounds())
	}

	res := &Result{Match: true, TotalPixels: b.Dx() * b.Dy()}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := channelDiff(actual.At(x, y), expected.At(x, y))
			res.MaxDifference = max(res.MaxDifference, d)
			if d <= opts.Tolerance {
				continue
			}
			if opts.FuzzyRadius > 0 && fuzzyMatch(actual, expected, x, y, opts) {
				continue
			}
			res.Match = false
			res.DifferentPixels++
			res.Bounds = res.Bounds.Union(image.Rect(x, y, x+1, y+1))
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(res.DifferentPixels) / float64(res.TotalPixels) * 100
		res.Match = pct <= opts.MaxDifferentPercent
	}
	return res, nil
}

// Diff returns actual in grey with every pixel that differs from expected
// in red.
func Diff(actual, expected image.Image, opts Options) *image.RGBA {
	b := actual.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := actual.At(x, y)
			if channelDiff(a, expected.At(x, y)) > opts.Tolerance {
				out.Set(x, y, color.RGBA{255, 0, 0, 255})
				continue
			}
			out.Set(x, y, color.GrayModel.Convert(a))
		}
	}
	return out
}

// LoadPNG decodes the PNG file at path.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func fuzzyMatch(actual, expected image.Image, x, y int, opts Options) bool {
	b := actual.Bounds()
	a := actual.At(x, y)
	for dy := -opts.FuzzyRadius; dy <= opts.FuzzyRadius; dy++ {
		for dx := -opts.FuzzyRadius; dx <= opts.FuzzyRadius; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(b) {
				continue
			}
			if channelDiff(a, expected.At(p.X, p.Y)) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

func channelDiff(a, b color.Color) int {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return max(
		absDelta(ar, br),
		absDelta(ag, bg),
		absDelta(ab, bb),
		absDelta(aa, ba),
	)
}

// absDelta compares two 16-bit channels at 8-bit precision.
func absDelta(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}
