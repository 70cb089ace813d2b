package text

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/image/font"
)

func TestResolve_FirstLoadableWins(t *testing.T) {
	var tried []string
	loader := func(path string, size int) (font.Face, error) {
		tried = append(tried, path)
		if path == "missing.ttf" {
			return nil, errors.New("no such file")
		}
		return LoadFace(BuiltinPrefix+"goregular", size)
	}
	r := NewResolver(zaptest.NewLogger(t), WithLoader(loader))

	face := r.Resolve([]string{"missing.ttf", "second.ttf", "third.ttf"}, 18)
	if face == nil {
		t.Fatal("Expected a face, got nil")
	}
	if len(tried) != 2 || tried[1] != "second.ttf" {
		t.Errorf("Expected resolution to stop at second candidate, tried %v", tried)
	}
}

func TestResolve_NoneLoadable(t *testing.T) {
	loader := func(path string, size int) (font.Face, error) {
		return nil, errors.New("broken")
	}
	r := NewResolver(zaptest.NewLogger(t), WithLoader(loader))

	if face := r.Resolve([]string{"a.ttf", "b.ttf"}, 18); face != nil {
		t.Errorf("Expected nil face, got %v", face)
	}
	if face := r.Resolve(nil, 18); face != nil {
		t.Errorf("Expected nil face for empty candidate list, got %v", face)
	}
}

func TestResolve_SizeIsPassedThrough(t *testing.T) {
	var sizes []int
	loader := func(path string, size int) (font.Face, error) {
		sizes = append(sizes, size)
		return nil, errors.New("nope")
	}
	r := NewResolver(nil, WithLoader(loader))
	r.Resolve([]string{"a", "b"}, 36)
	if len(sizes) != 2 || sizes[0] != 36 || sizes[1] != 36 {
		t.Errorf("Expected size 36 for every attempt, got %v", sizes)
	}
}

func TestLoadFace_UnknownBuiltin(t *testing.T) {
	if _, err := LoadFace(BuiltinPrefix+"comic", 12); err == nil {
		t.Error("Expected error for unknown builtin font")
	}
}

func TestResolveAll_RolesDegradeIndependently(t *testing.T) {
	cfg := BuiltinFontConfig()
	cfg[RoleMono] = FontSpec{Candidates: []string{"/nonexistent/font.ttf"}, Size: 16}

	faces := NewResolver(zaptest.NewLogger(t)).ResolveAll(cfg)
	defer faces.Close()

	if faces.Face(RoleMono) != nil {
		t.Error("Expected mono role to be unresolved")
	}
	for _, role := range []Role{RoleBody, RoleBodyBold, RoleHeader, RoleHeaderLarge} {
		if faces.Face(role) == nil {
			t.Errorf("Expected %s role to resolve", role)
		}
	}
	if faces.Size(RoleHeaderLarge) != 36 {
		t.Errorf("Expected header_large size 36, got %d", faces.Size(RoleHeaderLarge))
	}
	if faces.Size(RoleMono) != 16 {
		t.Errorf("Expected mono size to be recorded even when unresolved, got %d", faces.Size(RoleMono))
	}
}

func TestDefaultFontConfig_Sizes(t *testing.T) {
	want := map[Role]int{
		RoleBody:        18,
		RoleBodyBold:    20,
		RoleHeader:      28,
		RoleHeaderLarge: 36,
		RoleMono:        16,
	}
	cfg := DefaultFontConfig()
	for role, size := range want {
		if cfg[role].Size != size {
			t.Errorf("%s: expected size %d, got %d", role, size, cfg[role].Size)
		}
		if n := len(cfg[role].Candidates); n != 5 {
			t.Errorf("%s: expected 5 candidates, got %d", role, n)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		got, ok := ParseRole(role.String())
		if !ok || got != role {
			t.Errorf("ParseRole(%q) = %v, %v", role.String(), got, ok)
		}
	}
	if _, ok := ParseRole("italic"); ok {
		t.Error("Expected unknown role name to be rejected")
	}
}

func TestFaces_NilSafe(t *testing.T) {
	var f *Faces
	if f.Face(RoleBody) != nil || f.Size(RoleBody) != 0 {
		t.Error("Expected nil Faces to report nothing")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Expected nil error closing nil Faces, got %v", err)
	}
}

func TestMeasure_NilFaceEstimates(t *testing.T) {
	w, h := Measure(nil, "hello", 20)
	if w != 60 || h != 24 {
		t.Errorf("Expected estimate 60x24, got %dx%d", w, h)
	}
}

func TestMeasure_RealFace(t *testing.T) {
	face, err := LoadFace(BuiltinPrefix+"gomono", 16)
	if err != nil {
		t.Fatalf("loading builtin font: %v", err)
	}
	defer face.Close()

	w1, h := Measure(face, "ab", 16)
	w2, _ := Measure(face, "abcd", 16)
	if w1 <= 0 || h <= 0 {
		t.Fatalf("Expected positive size, got %dx%d", w1, h)
	}
	if w2 <= w1 {
		t.Errorf("Expected longer string to be wider: %d <= %d", w2, w1)
	}
	if Ascent(face) <= 0 || Ascent(face) > h {
		t.Errorf("Expected ascent within line height, got %d (height %d)", Ascent(face), h)
	}
}
