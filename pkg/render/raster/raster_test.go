package raster

import (
	"image/color"
	"testing"

	"github.com/matzehuels/gridviz/pkg/errors"
	"github.com/matzehuels/gridviz/pkg/grid"
	"github.com/matzehuels/gridviz/pkg/render/snapshot"
)

func mustSnapshot(t *testing.T, lines ...string) *snapshot.Snapshot {
	t.Helper()
	g, err := grid.Parse(lines)
	if err != nil {
		t.Fatalf("parse grid: %v", err)
	}
	// Build with no agent and no boxes keeps wall/goal cells while
	// normalizing S and B, so craft inputs accordingly.
	s, err := snapshot.Build(g, nil, nil)
	if err != nil {
		t.Fatalf("build snapshot: %v", err)
	}
	return s
}

func TestPaletteColor(t *testing.T) {
	pal := Default()

	tests := []struct {
		label byte
		want  color.NRGBA
	}{
		{grid.Wall, color.NRGBA{0, 0, 0, 255}},
		{grid.Goal, color.NRGBA{0, 255, 0, 255}},
		{grid.Start, color.NRGBA{200, 200, 200, 255}},
		{grid.Free, color.NRGBA{255, 255, 255, 255}},
		{grid.Agent, color.NRGBA{255, 0, 0, 255}},
		{grid.Box, color.NRGBA{0, 0, 255, 255}},
		{'?', color.NRGBA{255, 255, 255, 255}}, // unmapped falls through to free
		{'x', color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := pal.Color(tt.label); got != tt.want {
			t.Errorf("Color(%c) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatalf("ParseHex error: %v", err)
	}
	if c != (color.NRGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("ParseHex = %v", c)
	}

	for _, bad := range []string{"", "ff8000", "#zzzzzz", "#fff"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestPaletteKey(t *testing.T) {
	base := Default()
	if base.Key() != Default().Key() {
		t.Error("identical palettes should share a key")
	}
	if len(base.Key()) != 6*8 {
		t.Errorf("Key length = %d, want %d", len(base.Key()), 6*8)
	}

	recolored := Default()
	recolored.Agent = color.NRGBA{R: 255, G: 0, B: 255, A: 255}
	if recolored.Key() == base.Key() {
		t.Error("changing one entry should change the key")
	}
}

func TestRasterizeDimensions(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		scale int
	}{
		{"3x3 scale 1", []string{"...", "...", "..."}, 1},
		{"3x3 scale 5", []string{"...", "...", "..."}, 5},
		{"2x4 scale 3", []string{"....", "...."}, 3},
		{"1x1 scale 20", []string{"."}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSnapshot(t, tt.lines...)
			img, err := Rasterize(s, Default(), tt.scale)
			if err != nil {
				t.Fatalf("Rasterize error: %v", err)
			}
			wantW := s.Cols() * tt.scale
			wantH := s.Rows() * tt.scale
			b := img.Bounds()
			if b.Dx() != wantW || b.Dy() != wantH {
				t.Errorf("dimensions = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
			}
		})
	}
}

func TestRasterizeInvalidScale(t *testing.T) {
	s := mustSnapshot(t, "..")
	for _, scale := range []int{0, -1} {
		_, err := Rasterize(s, Default(), scale)
		if !errors.Is(err, errors.ErrCodeInvalidScale) {
			t.Errorf("scale %d: error code = %q, want INVALID_SCALE", scale, errors.GetCode(err))
		}
	}
}

func TestRasterizeBlockReplication(t *testing.T) {
	// 2x2 snapshot: wall, goal / free, free. At scale 3 every cell must
	// become a uniform 3x3 block with no blending at the seams.
	s := mustSnapshot(t, "#G", "..")
	pal := Default()

	const scale = 3
	img, err := Rasterize(s, pal, scale)
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}

	for y := 0; y < 2*scale; y++ {
		for x := 0; x < 2*scale; x++ {
			want := pal.Color(s.At(y/scale, x/scale))
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRasterizeScaleOne(t *testing.T) {
	s := mustSnapshot(t, "#.", ".G")
	pal := Default()

	img, err := Rasterize(s, pal, 1)
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != pal.Wall {
		t.Errorf("(0,0) = %v, want wall", got)
	}
	if got := img.NRGBAAt(1, 1); got != pal.Goal {
		t.Errorf("(1,1) = %v, want goal", got)
	}
	if got := img.NRGBAAt(1, 0); got != pal.Free {
		t.Errorf("(1,0) = %v, want free", got)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	s := mustSnapshot(t, "#G.", ".#G")

	a, err := Rasterize(s, Default(), 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Rasterize(s, Default(), 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Pix) != len(b.Pix) {
		t.Fatal("pixel buffers differ in length")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel data differs at byte %d", i)
		}
	}
}
