package layout

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Metrics are the layout constants shared by layout, hit-testing and painting.
type Metrics struct {
	LineHeight        int `yaml:"line_height"`
	HeaderHeight      int `yaml:"header_height"`
	HeaderLargeHeight int `yaml:"header_large_height"`
	MarginX           int `yaml:"margin_x"`
	MarginY           int `yaml:"margin_y"`
	MaxLineWidth      int `yaml:"max_line_width"`
	WordGap           int `yaml:"word_gap"`
	BottomMargin      int `yaml:"bottom_margin"`

	H1GapBefore        int `yaml:"h1_gap_before"`
	H1GapAfter         int `yaml:"h1_gap_after"`
	H2GapBefore        int `yaml:"h2_gap_before"`
	H2GapAfter         int `yaml:"h2_gap_after"`
	ParagraphGapBefore int `yaml:"paragraph_gap_before"`
	ParagraphGapAfter  int `yaml:"paragraph_gap_after"`

	PreGap        int `yaml:"pre_gap"`
	PreIndent     int `yaml:"pre_indent"`
	PreLineShrink int `yaml:"pre_line_shrink"`
	CodePadX      int `yaml:"code_pad_x"`
	CodePadY      int `yaml:"code_pad_y"`

	ListGap       int `yaml:"list_gap"`
	ListIndent    int `yaml:"list_indent"`
	ListItemGap   int `yaml:"list_item_gap"`
	BulletSize    int `yaml:"bullet_size"`
	BulletOffsetX int `yaml:"bullet_offset_x"`
	BulletOffsetY int `yaml:"bullet_offset_y"`

	// DefaultVisibleHeight clamps scrolling until the first frame reports
	// the real visible height.
	DefaultVisibleHeight int `yaml:"default_visible_height"`
	// ScrollbarAnchorX is the x coordinate the scrollbar is drawn left of.
	// It does not follow the viewport width.
	ScrollbarAnchorX int `yaml:"scrollbar_anchor_x"`
}

func DefaultMetrics() Metrics {
	return Metrics{
		LineHeight:        28,
		HeaderHeight:      40,
		HeaderLargeHeight: 52,
		MarginX:           40,
		MarginY:           0,
		MaxLineWidth:      800,
		WordGap:           8,
		BottomMargin:      100,

		H1GapBefore:        25,
		H1GapAfter:         10,
		H2GapBefore:        20,
		H2GapAfter:         8,
		ParagraphGapBefore: 15,
		ParagraphGapAfter:  10,

		PreGap:        15,
		PreIndent:     10,
		PreLineShrink: 4,
		CodePadX:      10,
		CodePadY:      8,

		ListGap:       10,
		ListIndent:    30,
		ListItemGap:   2,
		BulletSize:    6,
		BulletOffsetX: 8,
		BulletOffsetY: 10,

		DefaultVisibleHeight: 600,
		ScrollbarAnchorX:     1024,
	}
}

// Validate rejects metrics the layout algorithm cannot work with.
func (m Metrics) Validate() (err error) {
	positive := []struct {
		name string
		v    int
	}{
		{"line_height", m.LineHeight},
		{"max_line_width", m.MaxLineWidth},
		{"default_visible_height", m.DefaultVisibleHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %d", p.name, p.v))
		}
	}
	if m.PreLineShrink >= m.LineHeight {
		err = multierr.Append(err, fmt.Errorf("pre_line_shrink (%d) must be less than line_height (%d)", m.PreLineShrink, m.LineHeight))
	}
	if m.MarginX < 0 || m.MarginY < 0 {
		err = multierr.Append(err, errors.New("margins must not be negative"))
	}
	return err
}
