package render

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocateColorsPresets(t *testing.T) {
	opts := DefaultOptions()
	colors := opts.allocateColors([]string{"Cell", "Cancer"})
	want := []string{"#cf9fff", "#999999"}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Fatalf("allocateColors() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocateColorsPaletteFill(t *testing.T) {
	// unknown types draw from the palette in order, presets do not consume
	// palette entries
	opts := DefaultOptions()
	colors := opts.allocateColors([]string{"Person", "Cell", "GPE"})
	want := []string{kellyColors[0], "#cf9fff", kellyColors[1]}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Fatalf("allocateColors() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocateColorsCustomPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.Palette = []string{"#111111", "#222222"}
	colors := opts.allocateColors([]string{"X", "Y"})
	want := []string{"#111111", "#222222"}
	if diff := cmp.Diff(want, colors); diff != "" {
		t.Fatalf("allocateColors() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocateColorsGenerated(t *testing.T) {
	// more types than palette entries switches to generated colors
	opts := DefaultOptions()
	opts.Palette = []string{"#111111"}

	types := []string{"T1", "T2", "T3"}
	colors := opts.allocateColors(types)
	if len(colors) != len(types) {
		t.Fatalf("allocateColors() returned %d colors, want %d", len(colors), len(types))
	}
	for i, c := range colors {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("color %d = %q, want #RRGGBB", i, c)
		}
	}

	// same seed, same sequence
	again := opts.allocateColors(types)
	if diff := cmp.Diff(colors, again); diff != "" {
		t.Fatalf("generated colors are not deterministic (-first +second):\n%s", diff)
	}

	opts.Seed = 1234
	if changed := opts.allocateColors(types); cmp.Equal(colors, changed) {
		t.Fatal("different seed produced identical colors")
	}
}

func TestGeneratedColorsDistinct(t *testing.T) {
	colors := generatedColors(24, 1)
	seen := make(map[string]struct{})
	for _, c := range colors {
		seen[c] = struct{}{}
	}
	if len(seen) != 24 {
		t.Fatalf("generatedColors(24) produced %d distinct colors", len(seen))
	}
}

func TestDarkerColor(t *testing.T) {
	got, err := darkerColor("#ff0000", 0.3)
	if err != nil {
		t.Fatalf("darkerColor() error = %v", err)
	}
	if got != "#b30000" {
		t.Errorf("darkerColor(#ff0000, 0.3) = %q, want #b30000", got)
	}

	// gray stays gray
	got, err = darkerColor("999999", 0.5)
	if err != nil {
		t.Fatalf("darkerColor() without # error = %v", err)
	}
	if got[0] != '#' || got[1:3] != got[3:5] || got[3:5] != got[5:7] {
		t.Errorf("darkerColor(999999, 0.5) = %q, want a gray", got)
	}
}

func TestDarkerColorRejectsBadInput(t *testing.T) {
	for _, c := range []string{"", "#fff", "#ff00zz", "not-a-color"} {
		_, err := darkerColor(c, 0.3)
		var cerr *ColorFormatError
		if !errors.As(err, &cerr) {
			t.Errorf("darkerColor(%q) error = %v, want ColorFormatError", c, err)
		}
	}
}
