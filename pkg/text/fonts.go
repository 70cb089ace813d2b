package text

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Role names one of the typefaces the page engine draws with.
type Role int

const (
	RoleBody Role = iota
	RoleBodyBold
	RoleHeader
	RoleHeaderLarge
	RoleMono

	roleCount
)

var roleNames = [roleCount]string{
	RoleBody:        "body",
	RoleBodyBold:    "body_bold",
	RoleHeader:      "header",
	RoleHeaderLarge: "header_large",
	RoleMono:        "mono",
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, roleCount)
	for r := RoleBody; r < roleCount; r++ {
		roles = append(roles, r)
	}
	return roles
}

// ParseRole maps a configuration key such as "header_large" to its Role.
func ParseRole(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return Role(r), true
		}
	}
	return 0, false
}

// BuiltinPrefix marks a candidate that refers to a font compiled into the
// binary rather than a file on disk.
const BuiltinPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"gomono":    gomono.TTF,
}

// FontSpec is the ordered list of candidate paths and the pixel size for a role.
type FontSpec struct {
	Candidates []string
	Size       int
}

// FontConfig maps every role to its candidates.
type FontConfig map[Role]FontSpec

// candidates shared by the body and header roles
var textFonts = []string{
	"/usr/share/fonts/TTF/JetBrainsMonoNerdFont-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Courier.dfont",
	`C:\Windows\Fonts\consola.ttf`,
}

// candidates for code
var codeFonts = []string{
	"/usr/share/fonts/TTF/Hack-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	`C:\Windows\Fonts\arial.ttf`,
}

func withBuiltin(paths []string, name string) []string {
	out := make([]string, 0, len(paths)+1)
	out = append(out, paths...)
	return append(out, BuiltinPrefix+name)
}

// DefaultFontConfig returns the platform font candidates, each list ending in
// a builtin Go font so that a face is found on any machine.
func DefaultFontConfig() FontConfig {
	return FontConfig{
		RoleBody:        {Candidates: withBuiltin(textFonts, "goregular"), Size: 18},
		RoleBodyBold:    {Candidates: withBuiltin(textFonts, "gobold"), Size: 20},
		RoleHeader:      {Candidates: withBuiltin(textFonts, "goregular"), Size: 28},
		RoleHeaderLarge: {Candidates: withBuiltin(textFonts, "goregular"), Size: 36},
		RoleMono:        {Candidates: withBuiltin(codeFonts, "gomono"), Size: 16},
	}
}

// BuiltinFontConfig uses only the compiled-in Go fonts. Output does not depend
// on what is installed, which makes it the configuration of choice for tests
// and reference renders.
func BuiltinFontConfig() FontConfig {
	cfg := DefaultFontConfig()
	for role, spec := range cfg {
		last := spec.Candidates[len(spec.Candidates)-1]
		cfg[role] = FontSpec{Candidates: []string{last}, Size: spec.Size}
	}
	return cfg
}

// Loader opens one candidate at the given pixel size.
type Loader func(path string, size int) (font.Face, error)

// LoadFace is the default Loader. Builtin candidates are parsed with
// freetype, anything else is loaded from disk through gg.
func LoadFace(path string, size int) (font.Face, error) {
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		data, ok := builtinFonts[name]
		if !ok {
			return nil, fmt.Errorf("unknown builtin font %q", name)
		}
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing builtin font %q: %w", name, err)
		}
		return truetype.NewFace(f, &truetype.Options{Size: float64(size), Hinting: font.HintingFull}), nil
	}
	return gg.LoadFontFace(path, float64(size))
}

// Resolver picks the first loadable font out of a candidate list.
type Resolver struct {
	load Loader
	log  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoader replaces the font loader, e.g. with a test double.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		if l != nil {
			r.load = l
		}
	}
}

func NewResolver(log *zap.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{load: LoadFace, log: log}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve tries candidates in order and returns the first face that loads.
// It returns nil when none does; it never fails.
func (r *Resolver) Resolve(candidates []string, size int) font.Face {
	for _, path := range candidates {
		face, err := r.load(path, size)
		if err == nil && face != nil {
			r.log.Debug("Font resolved", zap.String("path", path), zap.Int("size", size))
			return face
		}
		r.log.Debug("Font candidate rejected", zap.String("path", path), zap.Int("size", size), zap.Error(err))
	}
	return nil
}

// ResolveAll resolves every role of cfg independently.
func (r *Resolver) ResolveAll(cfg FontConfig) *Faces {
	faces := &Faces{}
	for _, role := range Roles() {
		spec, ok := cfg[role]
		if !ok {
			r.log.Warn("No font configured for role", zap.Stringer("role", role))
			continue
		}
		faces.sizes[role] = spec.Size
		faces.faces[role] = r.Resolve(spec.Candidates, spec.Size)
		if faces.faces[role] == nil {
			r.log.Warn("No font candidate could be loaded, text in this role will not be drawn",
				zap.Stringer("role", role), zap.Strings("candidates", spec.Candidates))
		}
	}
	return faces
}

// Faces holds the resolved face of every role. Any of them may be nil.
type Faces struct {
	faces [roleCount]font.Face
	sizes [roleCount]int
}

// NewFaces builds a face set directly, bypassing resolution.
func NewFaces(faces map[Role]font.Face, sizes map[Role]int) *Faces {
	f := &Faces{}
	for role, face := range faces {
		if role >= 0 && role < roleCount {
			f.faces[role] = face
		}
	}
	for role, size := range sizes {
		if role >= 0 && role < roleCount {
			f.sizes[role] = size
		}
	}
	return f
}

func (f *Faces) Face(role Role) font.Face {
	if f == nil || role < 0 || role >= roleCount {
		return nil
	}
	return f.faces[role]
}

func (f *Faces) Size(role Role) int {
	if f == nil || role < 0 || role >= roleCount {
		return 0
	}
	return f.sizes[role]
}

// Close closes every resolved face. Faces shared between roles are closed once.
func (f *Faces) Close() (err error) {
	if f == nil {
		return nil
	}
	seen := make(map[font.Face]bool)
	for i, face := range f.faces {
		if face == nil || seen[face] {
			continue
		}
		seen[face] = true
		if e := face.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("closing %s font: %w", Role(i), e))
		}
		f.faces[i] = nil
	}
	return err
}
