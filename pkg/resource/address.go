package resource

import (
	"regexp"
	"strconv"
	"strings"

	stdnet "herobrowser/std/net"
)

// DefaultHeroPort is used when a hero address names no port.
const DefaultHeroPort = 8080

var heroAddress = regexp.MustCompile(`(?i)^(?:hero://)?([^/:]+)(?::(\d+))?`)

// HeroAddress is a parsed hero:// or *.hero address.
type HeroAddress struct {
	Host string
	Port int
	// Path is everything after host and port, "/" when empty.
	Path string
}

// String renders the address in its canonical hero:// form.
func (a HeroAddress) String() string {
	return "hero://" + a.Host + ":" + strconv.Itoa(a.Port) + a.Path
}

// IsHeroAddress reports whether addr names a hero site, either with the
// hero:// scheme or a host under the .hero domain.
func IsHeroAddress(addr string) bool {
	lower := strings.ToLower(addr)
	return strings.HasPrefix(lower, "hero://") || strings.Contains(lower, ".hero")
}

// ParseHeroAddress splits addr into host, port and path. Unparseable input
// falls back to localhost on the default port.
func ParseHeroAddress(addr string) HeroAddress {
	m := heroAddress.FindStringSubmatchIndex(addr)
	if m == nil {
		return HeroAddress{Host: "localhost", Port: DefaultHeroPort, Path: "/"}
	}
	a := HeroAddress{Host: addr[m[2]:m[3]], Port: DefaultHeroPort, Path: addr[m[1]:]}
	if m[4] >= 0 {
		if p, err := strconv.Atoi(addr[m[4]:m[5]]); err == nil && p > 0 && p <= 65535 {
			a.Port = p
		}
	}
	if a.Path == "" || a.Path[0] != '/' {
		a.Path = "/" + a.Path
	}
	return a
}

// IsFileAddress reports whether addr is a file:// URL or a filesystem path.
func IsFileAddress(addr string) bool {
	return strings.HasPrefix(addr, "file://") ||
		strings.HasPrefix(addr, "/") ||
		strings.HasPrefix(addr, "./") ||
		strings.HasPrefix(addr, "../")
}

// IsNavigable reports whether a Fetcher can load addr at all.
func IsNavigable(addr string) bool {
	return IsHeroAddress(addr) || stdnet.IsNetworkURL(addr) || IsFileAddress(addr)
}

// Resolve resolves a link href found on the page at base. Absolute hrefs are
// returned unchanged.
func Resolve(base, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return base
	case strings.Contains(href, "://"), IsHeroAddress(href):
		return href
	case stdnet.IsNetworkURL(base):
		return stdnet.ResolveURL(base, href)
	case IsHeroAddress(base):
		a := ParseHeroAddress(base)
		root := "http://" + a.Host + ":" + strconv.Itoa(a.Port)
		resolved := stdnet.ResolveURL(root+a.Path, href)
		return "hero://" + strings.TrimPrefix(resolved, "http://")
	}
	return href
}
