package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"herobrowser/pkg/layout"
)

// Theme is the page palette.
type Theme struct {
	TextPrimary color.NRGBA
	TextLink    color.NRGBA
	TextHeader  color.NRGBA
	TextCode    color.NRGBA
	TextMuted   color.NRGBA

	Background  color.NRGBA
	CodeBG      color.NRGBA
	LinkHoverBG color.NRGBA
	LinkLine    color.NRGBA

	ScrollbarTrack color.NRGBA
	ScrollbarThumb color.NRGBA
	Bullet         color.NRGBA
}

func DefaultTheme() Theme {
	return Theme{
		TextPrimary: color.NRGBA{45, 45, 45, 255},
		TextLink:    color.NRGBA{37, 99, 235, 255},
		TextHeader:  color.NRGBA{17, 24, 39, 255},
		TextCode:    color.NRGBA{88, 28, 135, 255},
		TextMuted:   color.NRGBA{107, 114, 128, 255},

		Background:  color.NRGBA{255, 255, 255, 255},
		CodeBG:      color.NRGBA{243, 244, 246, 255},
		LinkHoverBG: color.NRGBA{219, 234, 254, 255},
		LinkLine:    color.NRGBA{147, 197, 253, 180},

		ScrollbarTrack: color.NRGBA{243, 244, 246, 255},
		ScrollbarThumb: color.NRGBA{156, 163, 175, 255},
		Bullet:         color.NRGBA{107, 114, 128, 255},
	}
}

// TextColors returns the ink colours layout rasterises text with.
func (t Theme) TextColors() layout.TextColors {
	return layout.TextColors{
		Primary: t.TextPrimary,
		Link:    t.TextLink,
		Header:  t.TextHeader,
		Code:    t.TextCode,
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: expected #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexColor formats c as "#rrggbb", adding the alpha byte when it is not opaque.
func HexColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
