package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"net/http"
	"os"
	"time"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/nav"
	"herobrowser/pkg/page"
	"herobrowser/pkg/render"
	"herobrowser/pkg/resource"
	"herobrowser/pkg/text"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	FontConfig struct {
		Candidates []string `yaml:"candidates" validate:"required,dive,required"`
		Size       int      `yaml:"size" validate:"min=1"`
	}

	ThemeConfig struct {
		TextPrimary    string `yaml:"text_primary" validate:"hexcolor"`
		TextLink       string `yaml:"text_link" validate:"hexcolor"`
		TextHeader     string `yaml:"text_header" validate:"hexcolor"`
		TextCode       string `yaml:"text_code" validate:"hexcolor"`
		TextMuted      string `yaml:"text_muted" validate:"hexcolor"`
		Background     string `yaml:"background" validate:"hexcolor"`
		CodeBG         string `yaml:"code_bg" validate:"hexcolor"`
		LinkHoverBG    string `yaml:"link_hover_bg" validate:"hexcolor"`
		LinkLine       string `yaml:"link_line" validate:"hexcolor"`
		ScrollbarTrack string `yaml:"scrollbar_track" validate:"hexcolor"`
		ScrollbarThumb string `yaml:"scrollbar_thumb" validate:"hexcolor"`
		Bullet         string `yaml:"bullet" validate:"hexcolor"`
	}

	ContentConfig struct {
		Gateway string        `yaml:"gateway" validate:"required"`
		Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	}

	ViewerConfig struct {
		Width           int    `yaml:"width" validate:"min=320"`
		Height          int    `yaml:"height" validate:"min=240"`
		TopBarHeight    int    `yaml:"top_bar_height" validate:"gte=0"`
		StatusBarHeight int    `yaml:"status_bar_height" validate:"gte=0"`
		WheelStep       int    `yaml:"wheel_step" validate:"min=1"`
		Home            string `yaml:"home" validate:"required"`
	}

	Config struct {
		Version   int                   `yaml:"version" validate:"eq=1"`
		Layout    layout.Metrics        `yaml:"layout"`
		Fonts     map[string]FontConfig `yaml:"fonts" validate:"required,dive"`
		Theme     ThemeConfig           `yaml:"theme"`
		Content   ContentConfig         `yaml:"content"`
		Viewer    ViewerConfig          `yaml:"viewer"`
		Bookmarks []nav.Bookmark        `yaml:"bookmarks"`
		Logging   LoggingConfig         `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config) (*Config, error) {
	// only fields we defined are allowed, so yaml.Unmarshal cannot be used
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration decodes the built-in defaults, superimposes the file at
// path on them when path is not empty, and validates the result.
func LoadConfiguration(path string) (*Config, error) {
	cfg, err := unmarshalConfig(defaultConfig, &Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if len(path) > 0 {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfg, err = unmarshalConfig(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to process configuration file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

// Dump serialises cfg back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks field constraints, layout metrics, font roles and colours.
func (c *Config) Validate() (err error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if e := v.Struct(c); e != nil {
		err = multierr.Append(err, e)
	}
	if e := c.Layout.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("layout: %w", e))
	}
	if _, e := c.FontConfig(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := c.Theme.Theme(); e != nil {
		err = multierr.Append(err, e)
	}
	return err
}

// FontConfig converts the fonts section to resolver input. Unknown role names
// are rejected.
func (c *Config) FontConfig() (text.FontConfig, error) {
	out := make(text.FontConfig, len(c.Fonts))
	var err error
	for name, f := range c.Fonts {
		role, ok := text.ParseRole(name)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("fonts: unknown role %q", name))
			continue
		}
		out[role] = text.FontSpec{Candidates: append([]string(nil), f.Candidates...), Size: f.Size}
	}
	return out, err
}

// Theme parses every colour of the theme section.
func (t ThemeConfig) Theme() (render.Theme, error) {
	var (
		th  render.Theme
		err error
	)
	for _, f := range []struct {
		name string
		hex  string
		dst  *color.NRGBA
	}{
		{"text_primary", t.TextPrimary, &th.TextPrimary},
		{"text_link", t.TextLink, &th.TextLink},
		{"text_header", t.TextHeader, &th.TextHeader},
		{"text_code", t.TextCode, &th.TextCode},
		{"text_muted", t.TextMuted, &th.TextMuted},
		{"background", t.Background, &th.Background},
		{"code_bg", t.CodeBG, &th.CodeBG},
		{"link_hover_bg", t.LinkHoverBG, &th.LinkHoverBG},
		{"link_line", t.LinkLine, &th.LinkLine},
		{"scrollbar_track", t.ScrollbarTrack, &th.ScrollbarTrack},
		{"scrollbar_thumb", t.ScrollbarThumb, &th.ScrollbarThumb},
		{"bullet", t.Bullet, &th.Bullet},
	} {
		c, e := render.ParseHexColor(f.hex)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("theme %s: %w", f.name, e))
			continue
		}
		*f.dst = c
	}
	return th, err
}

// PageConfig builds the engine configuration.
func (c *Config) PageConfig() (page.Config, error) {
	fonts, err := c.FontConfig()
	if err != nil {
		return page.Config{}, err
	}
	theme, err := c.Theme.Theme()
	if err != nil {
		return page.Config{}, err
	}
	return page.Config{Metrics: c.Layout, Fonts: fonts, Theme: theme}, nil
}

// FetcherOptions configures a resource fetcher from the content section.
func (c *Config) FetcherOptions() []resource.Option {
	return []resource.Option{
		resource.WithGateway(c.Content.Gateway),
		resource.WithClient(&http.Client{Timeout: c.Content.Timeout}),
	}
}
