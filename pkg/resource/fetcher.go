package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	stdnet "herobrowser/std/net"
)

// DefaultGateway is the HTTP endpoint hero addresses are served from.
// {host}, {port} and {path} are substituted from the parsed address.
const DefaultGateway = "http://127.0.0.1:{port}{path}"

// ErrUnsupported is returned for addresses no source can serve.
var ErrUnsupported = errors.New("unsupported address")

// Fetcher retrieves page markup by address.
type Fetcher interface {
	Fetch(ctx context.Context, addr string) (string, error)
}

// DefaultFetcher reads hero sites through an HTTP gateway, plain http(s)
// URLs directly, and file:// URLs or paths from disk.
type DefaultFetcher struct {
	client  *http.Client
	gateway string
	log     *zap.Logger
}

type Option func(*DefaultFetcher)

// WithClient sets the HTTP client. A nil client keeps the default.
func WithClient(c *http.Client) Option {
	return func(f *DefaultFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithGateway sets the gateway template hero addresses are mapped to.
func WithGateway(tmpl string) Option {
	return func(f *DefaultFetcher) {
		if tmpl != "" {
			f.gateway = tmpl
		}
	}
}

func NewFetcher(log *zap.Logger, opts ...Option) *DefaultFetcher {
	if log == nil {
		log = zap.NewNop()
	}
	f := &DefaultFetcher{client: stdnet.DefaultClient, gateway: DefaultGateway, log: log}
	for _, o := range opts {
		o(f)
	}
	return f
}

// GatewayURL maps a hero address to the HTTP URL it is fetched from.
func (f *DefaultFetcher) GatewayURL(addr string) string {
	a := ParseHeroAddress(addr)
	return strings.NewReplacer(
		"{host}", a.Host,
		"{port}", strconv.Itoa(a.Port),
		"{path}", a.Path,
	).Replace(f.gateway)
}

// Fetch retrieves the markup at addr.
func (f *DefaultFetcher) Fetch(ctx context.Context, addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	switch {
	case IsFileAddress(addr):
		return f.fetchFile(addr)
	case stdnet.IsNetworkURL(addr):
		return f.fetchHTTP(ctx, addr)
	case IsHeroAddress(addr):
		target := f.GatewayURL(addr)
		f.log.Debug("Mapped hero address", zap.String("address", addr), zap.String("url", target))
		return f.fetchHTTP(ctx, target)
	}
	return "", fmt.Errorf("%q: %w", addr, ErrUnsupported)
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, target string) (string, error) {
	body, contentType, err := stdnet.Fetch(ctx, f.client, target)
	if err != nil {
		return "", err
	}
	f.log.Debug("Fetched page", zap.String("url", target), zap.String("content_type", contentType), zap.Int("bytes", len(body)))
	return string(body), nil
}

func (f *DefaultFetcher) fetchFile(addr string) (string, error) {
	path := addr
	if strings.HasPrefix(addr, "file://") {
		u, err := url.Parse(addr)
		if err != nil {
			return "", fmt.Errorf("parsing %q: %w", addr, err)
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}
	f.log.Debug("Read page from disk", zap.String("path", path), zap.Int("bytes", len(data)))
	return string(data), nil
}

// Load fetches addr and always returns markup to lay out: the page itself, a
// protocol error page for unsupported addresses, or a connection error page.
func Load(ctx context.Context, f Fetcher, addr string) string {
	if !IsNavigable(addr) {
		return ProtocolErrorPage
	}
	content, err := f.Fetch(ctx, addr)
	if errors.Is(err, ErrUnsupported) {
		return ProtocolErrorPage
	}
	if err != nil {
		return ErrorPage(err)
	}
	return content
}
