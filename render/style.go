package render

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorFormatError reports a preset or generated color that does not match
// the #RRGGBB form.
type ColorFormatError struct {
	Color string
}

func (e *ColorFormatError) Error() string {
	return fmt.Sprintf("color %q is not a 6 hex digit RGB color", e.Color)
}

// kellyColors is a high-contrast palette [K Kelly, Color Eng., 3 (6) (1965)]
// with white and black excluded and some reordering.
var kellyColors = []string{
	"#FFB300", // yellow
	"#007D34", // green
	"#FF6800", // orange
	"#A6BDD7", // light blue
	"#C10020", // red
	"#CEA262", // buff
	"#817066", // gray
	"#803E75", // purple
	"#F6768E", // purplish pink
	"#00538A", // blue
	"#FF7A5C", // yellowish pink
	"#53377A", // violet
	"#FF8E00", // orange yellow
	"#B32851", // purplish red
	"#F4C800", // greenish yellow
	"#7F180D", // reddish brown
	"#93AA00", // yellow green
	"#593315", // yellowish brown
	"#F13A13", // reddish orange
	"#232C16", // olive green
}

// presetColors maps normalized annotation types with domain-specific
// conventional colors, consulted before the palette.
var presetColors = map[string]string{
	"Organism_subdivision":            "#ddaaaa",
	"Anatomical_system":               "#ee99cc",
	"Organ":                           "#ff95ee",
	"Multi-tissue_structure":          "#e999ff",
	"Tissue":                          "#cf9fff",
	"Developing_anatomical_structure": "#ff9fff",
	"Cell":                            "#cf9fff",
	"Cellular_component":              "#bbc3ff",
	"Organism_substance":              "#ffeee0",
	"Immaterial_anatomical_entity":    "#fff9f9",
	"Pathological_formation":          "#aaaaaa",
	"Cancer":                          "#999999",
}

var hexColorRx = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// allocateColors returns one color per type label, in label order. Labels
// found in the preset table take their preset color; the rest draw from the
// palette in order of first appearance, or from generated colors when there
// are more unmatched labels than palette entries. An empty palette selects
// the built-in high-contrast one.
func (o *Options) allocateColors(types []string) []string {
	missing := 0
	for _, t := range types {
		if _, ok := o.Presets[t]; !ok {
			missing++
		}
	}

	palette := o.Palette
	if len(palette) == 0 {
		palette = kellyColors
	}

	var fill []string
	if missing <= len(palette) {
		fill = palette[:missing]
	} else {
		fill = generatedColors(missing, o.Seed)
	}

	colors := make([]string, 0, len(types))
	next := 0
	for _, t := range types {
		if c, ok := o.Presets[t]; ok {
			colors = append(colors, c)
		} else {
			colors = append(colors, fill[next])
			next++
		}
	}
	return colors
}

// generatedColors evenly divides hue space into n colors with saturation and
// value randomized within a fixed seeded sequence for reproducibility.
func generatedColors(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))

	colors := make([]string, 0, n)
	for i := 0; i < n; i++ {
		h := 360.0 * float64(i) / float64(n)
		s := 0.9 + rng.Float64()/10
		v := 0.9 + rng.Float64()/10
		colors = append(colors, colorful.Hsv(h, s, v).Hex())
	}
	return colors
}

// darkerColor derives the border variant of an #RRGGBB color by reducing its
// value in HSV space by the given fraction.
func darkerColor(c string, amount float64) (string, error) {
	if !hexColorRx.MatchString(c) {
		return "", &ColorFormatError{Color: c}
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return "", &ColorFormatError{Color: c}
	}
	h, s, v := col.Hsv()
	return colorful.Hsv(h, s, v*(1.0-amount)).Hex(), nil
}
