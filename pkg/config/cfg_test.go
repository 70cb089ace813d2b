package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"herobrowser/pkg/layout"
	"herobrowser/pkg/render"
	"herobrowser/pkg/text"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Content.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Content.Timeout)
	}
	if cfg.Viewer.Home != "localhost.hero:8080" {
		t.Errorf("Home = %q", cfg.Viewer.Home)
	}
}

func TestDefaults_MatchCode(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout != layout.DefaultMetrics() {
		t.Errorf("Embedded layout differs from DefaultMetrics:\n%+v\n%+v", cfg.Layout, layout.DefaultMetrics())
	}
	theme, err := cfg.Theme.Theme()
	if err != nil {
		t.Fatal(err)
	}
	if theme != render.DefaultTheme() {
		t.Errorf("Embedded theme differs from DefaultTheme:\n%+v\n%+v", theme, render.DefaultTheme())
	}
	fonts, err := cfg.FontConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fonts, text.DefaultFontConfig()) {
		t.Errorf("Embedded fonts differ from DefaultFontConfig:\n%+v\n%+v", fonts, text.DefaultFontConfig())
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
layout:
  margin_y: 30
fonts:
  mono:
    size: 14
    candidates: ["builtin:gomono"]
theme:
  background: "#000000"
content:
  gateway: "http://gateway.test/{host}{path}"
viewer:
  wheel_step: 60
bookmarks:
  - title: Home
    url: localhost.hero:8080
logging:
  console:
    level: debug
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Layout.MarginY != 30 || cfg.Layout.LineHeight != 28 {
		t.Errorf("Expected margin_y overridden and line_height kept, got %+v", cfg.Layout)
	}
	if f := cfg.Fonts["mono"]; f.Size != 14 || len(f.Candidates) != 1 {
		t.Errorf("Expected mono font replaced, got %+v", f)
	}
	if f := cfg.Fonts["body"]; f.Size != 18 {
		t.Errorf("Expected body font kept, got %+v", f)
	}
	if cfg.Theme.Background != "#000000" || cfg.Theme.TextLink != "#2563eb" {
		t.Errorf("Unexpected theme %+v", cfg.Theme)
	}
	if cfg.Viewer.WheelStep != 60 || cfg.Viewer.Width != 1024 {
		t.Errorf("Unexpected viewer %+v", cfg.Viewer)
	}
	if len(cfg.Bookmarks) != 1 || cfg.Bookmarks[0].Title != "Home" {
		t.Errorf("Unexpected bookmarks %+v", cfg.Bookmarks)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Expected debug console level, got %q", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoadConfiguration_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown field":   "version: 1\nlayout:\n  line_hieght: 20\n",
		"bad version":     "version: 2\n",
		"bad colour":      "version: 1\ntheme:\n  bullet: grey\n",
		"unknown role":    "version: 1\nfonts:\n  italic:\n    size: 12\n    candidates: [x]\n",
		"zero font size":  "version: 1\nfonts:\n  body:\n    size: 0\n",
		"bad metrics":     "version: 1\nlayout:\n  line_height: 0\n",
		"bad log level":   "version: 1\nlogging:\n  console:\n    level: loud\n",
		"zero timeout":    "version: 1\ncontent:\n  timeout: 0s\n",
		"tiny viewer":     "version: 1\nviewer:\n  width: 10\n",
		"empty candidate": "version: 1\nfonts:\n  body:\n    size: 12\n    candidates: ['']\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, content)); err == nil {
				t.Errorf("Expected %s to be rejected", name)
			}
		})
	}
}

func TestLoadConfiguration_MissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected read error, got %v", err)
	}
}

func TestDump_RoundTrips(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "timeout: 30s") {
		t.Errorf("Expected duration rendered as text, got:\n%s", data)
	}
	again, err := LoadConfiguration(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Dumped configuration does not load: %v", err)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("Round trip changed the configuration:\n%+v\n%+v", cfg, again)
	}
}

func TestPrepare_IsTheEmbeddedFile(t *testing.T) {
	data := Prepare()
	if !strings.HasPrefix(string(data), "version: 1") {
		t.Errorf("Unexpected default configuration:\n%s", data)
	}
	data[0] = 'X'
	if Prepare()[0] != 'v' {
		t.Error("Expected Prepare to return a copy")
	}
}

func TestPageConfig(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	pc, err := cfg.PageConfig()
	if err != nil {
		t.Fatal(err)
	}
	if pc.Metrics.ScrollbarAnchorX != 1024 || pc.Fonts[text.RoleMono].Size != 16 {
		t.Errorf("Unexpected page configuration %+v", pc)
	}
	if len(cfg.FetcherOptions()) != 2 {
		t.Error("Expected gateway and client options")
	}
}

func TestLoggingPrepare(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "hero.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest},
	}
	log, err := conf.Prepare("test")
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("written to file")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("Expected log line in file, got %q", data)
	}

	conf.FileLogger.Destination = filepath.Join(t.TempDir(), "missing", "dir", "hero.log")
	if _, err := conf.Prepare("test"); err == nil {
		t.Error("Expected an error for an unreachable destination")
	}
}
