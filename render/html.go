package render

import (
	"fmt"

	"go.uber.org/zap"

	"sohtml/so"
)

// Options control how annotations are laid out and colored. The zero value is
// not usable, start from DefaultOptions.
type Options struct {
	// Tag is the HTML tag wrapping highlighted spans.
	Tag string
	// VSpace is the vertical gap between span boxes at different heights in
	// pixels, border included.
	VSpace int
	// BaseLineHeight is the text line height without annotations, in pixels.
	BaseLineHeight int
	// Darken is the fraction by which border colors are darker than the span
	// background.
	Darken float64
	// Seed fixes the sequence of generated colors.
	Seed int64
	// Presets maps normalized annotation types to colors, consulted before
	// the palette.
	Presets map[string]string
	// Palette is drawn from for types without a preset; empty selects the
	// built-in high-contrast palette.
	Palette []string

	Headings HeadingPolicy
}

func DefaultOptions() Options {
	return Options{
		Tag:            "span",
		VSpace:         2,
		BaseLineHeight: 24,
		Darken:         0.3,
		Seed:           1,
		Presets:        presetColors,
		Headings:       HeadingPolicy{Enable: true, MaxLength: 100, TopOffset: 10},
	}
}

// Renderer converts text with standoff annotations to HTML. A single Renderer
// is safe for concurrent use, each Render call keeps its own scratch state.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts, log: log}
}

// Render produces the stylesheet and HTML body fragment visualizing the given
// standoff annotations over text. Offsets are interpreted as code points.
// When legend is true the body starts with a legend box listing every
// annotation type in its assigned color.
func (r *Renderer) Render(text string, standoffs []so.Standoff, legend bool) (cssText, body string, err error) {
	j := &job{opts: &r.opts, text: []rune(text)}

	j.spans = make([]span, 0, len(standoffs))
	for _, st := range standoffs {
		cls, err := CSSClass(st.Type)
		if err != nil {
			return "", "", err
		}
		_, formatting := formattingTags[cls]
		j.spans = append(j.spans, span{
			start:      st.Start,
			end:        st.End,
			typ:        cls,
			formatting: formatting,
			nested:     make(map[int]struct{}),
			sortHeight: heightUnset,
		})
	}

	// highlighted types in order of first appearance, with colors; the legend
	// shows the last original label normalizing to each type
	var types []string
	seen := make(map[string]struct{})
	for i := range j.spans {
		if j.spans[i].formatting {
			continue
		}
		if _, ok := seen[j.spans[i].typ]; !ok {
			seen[j.spans[i].typ] = struct{}{}
			types = append(types, j.spans[i].typ)
		}
	}
	colors := r.opts.allocateColors(types)

	var legendHTML string
	if legend {
		fullForm := make(map[string]string, len(types))
		seenFull := make(map[string]struct{}, len(standoffs))
		for i, st := range standoffs {
			if _, ok := seenFull[st.Type]; ok {
				continue
			}
			seenFull[st.Type] = struct{}{}
			fullForm[j.spans[i].typ] = st.Type
		}
		labels := make([]string, len(types))
		for i, t := range types {
			labels[i] = fullForm[t]
		}
		if legendHTML, err = r.opts.buildLegend(types, labels); err != nil {
			return "", "", err
		}
	}

	maxHeight := j.resolveHeights()

	if cssText, err = r.opts.generateCSS(maxHeight, types, colors, legend); err != nil {
		return "", "", err
	}
	body = j.assembleBody(legendHTML)

	r.log.Debug("Rendered annotations",
		zap.Int("standoffs", len(standoffs)),
		zap.Int("types", len(types)),
		zap.Int("max_height", maxHeight))

	return cssText, body, nil
}

// Document renders a complete standalone HTML page with the stylesheet
// embedded in the head. extraCSS, when not empty, is appended after the
// generated styles so it can override them.
func (r *Renderer) Document(text string, standoffs []so.Standoff, legend bool, extraCSS string) (string, error) {
	cssText, body, err := r.Render(text, standoffs, legend)
	if err != nil {
		return "", err
	}
	return r.compose(cssText, body, extraCSS), nil
}

// compose wraps generated css and body into the standalone page.
func (r *Renderer) compose(cssText, body, extraCSS string) string {
	if extraCSS != "" {
		cssText += "\n" + extraCSS
	}
	return headerPreCSS + r.styleCSS() + cssText + headerPostCSS + body + trailer
}

// Render is a convenience wrapper using default options.
func Render(text string, standoffs []so.Standoff, legend bool) (cssText, body string, err error) {
	return New(DefaultOptions(), nil).Render(text, standoffs, legend)
}

// Document is a convenience wrapper using default options.
func Document(text string, standoffs []so.Standoff, legend bool) (string, error) {
	return New(DefaultOptions(), nil).Document(text, standoffs, legend, "")
}

const headerPreCSS = `<!DOCTYPE html>
<html>
<head>
<style type="text/css">
`

// styleCSS is the page boilerplate around the generated annotation styles.
func (r *Renderer) styleCSS() string {
	return fmt.Sprintf(`html {
  background-color: #eee;
  font-family: sans;
}
body {
  background-color: #fff;
  border: 1px solid #ddd;
  padding: 15px; margin: 15px;
  line-height: %dpx
}
section {
  padding: 15px;
}
`, r.opts.BaseLineHeight)
}

const headerPostCSS = `
</style>
</head>
<body class="clearfix">`

const trailer = `</body>
</html>`
