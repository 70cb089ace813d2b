package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestParseHeroAddress(t *testing.T) {
	tests := []struct {
		in   string
		want HeroAddress
	}{
		{"localhost.hero:8080", HeroAddress{"localhost.hero", 8080, "/"}},
		{"hero://docs.hero", HeroAddress{"docs.hero", 8080, "/"}},
		{"HERO://Site.hero:9000/about", HeroAddress{"Site.hero", 9000, "/about"}},
		{"hero://x.hero:99999", HeroAddress{"x.hero", 8080, "/"}},
		{"", HeroAddress{"localhost", 8080, "/"}},
	}
	for _, tt := range tests {
		if got := ParseHeroAddress(tt.in); got != tt.want {
			t.Errorf("ParseHeroAddress(%q): expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestIsHeroAddress(t *testing.T) {
	for addr, want := range map[string]bool{
		"hero://a":            true,
		"localhost.hero:8080": true,
		"news.HERO":           true,
		"http://example.com":  false,
		"example.com":         false,
	} {
		if got := IsHeroAddress(addr); got != want {
			t.Errorf("IsHeroAddress(%q): expected %v", addr, want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct{ base, href, want string }{
		{"hero://a.hero:8080/dir/page", "next", "hero://a.hero:8080/dir/next"},
		{"localhost.hero:8080", "/about", "hero://localhost.hero:8080/about"},
		{"hero://a.hero", "hero://b.hero", "hero://b.hero"},
		{"http://x.test/a/b", "c", "http://x.test/a/c"},
		{"hero://a.hero", "  ", "hero://a.hero"},
	}
	for _, tt := range tests {
		if got := Resolve(tt.base, tt.href); got != tt.want {
			t.Errorf("Resolve(%q, %q): expected %q, got %q", tt.base, tt.href, tt.want, got)
		}
	}
}

func TestFetch_HeroThroughGateway(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("<h1>Hero</h1>"))
	}))
	defer srv.Close()

	f := NewFetcher(zaptest.NewLogger(t), WithClient(srv.Client()), WithGateway(srv.URL+"{path}"))
	body, err := f.Fetch(context.Background(), "hero://site.hero:8080/news")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body != "<h1>Hero</h1>" || gotPath != "/news" {
		t.Errorf("Unexpected fetch: body %q path %q", body, gotPath)
	}
}

func TestGatewayURL_Default(t *testing.T) {
	f := NewFetcher(nil)
	if got := f.GatewayURL("localhost.hero:9001"); got != "http://127.0.0.1:9001/" {
		t.Errorf("Unexpected gateway URL %q", got)
	}
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<p>disk</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(zaptest.NewLogger(t))

	for _, addr := range []string{path, "file://" + path} {
		body, err := f.Fetch(context.Background(), addr)
		if err != nil || body != "<p>disk</p>" {
			t.Errorf("Fetch(%q): got %q, %v", addr, body, err)
		}
	}
	if _, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestFetch_Unsupported(t *testing.T) {
	_, err := NewFetcher(nil).Fetch(context.Background(), "gopher://x")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Expected ErrUnsupported, got %v", err)
	}
}

func TestLoad_ErrorPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	f := NewFetcher(zaptest.NewLogger(t), WithClient(srv.Client()))

	if got := Load(context.Background(), f, "example.com"); got != ProtocolErrorPage {
		t.Errorf("Expected protocol error page, got %q", got)
	}
	got := Load(context.Background(), f, srv.URL)
	if !strings.HasPrefix(got, "<h1>Connection Error</h1><p>ERROR: ") || !strings.Contains(got, "500") {
		t.Errorf("Expected connection error page, got %q", got)
	}
}

func TestErrorPage_StripsMarkup(t *testing.T) {
	got := ErrorPage(errors.New("bad <p>thing</p>"))
	if want := "<h1>Connection Error</h1><p>ERROR: bad pthing/p</p>"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
