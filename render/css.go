package render

import (
	"fmt"

	"sohtml/css"
)

// legendRules style the floating legend box. The clearfix rules avoid legend
// overflow past the body.
func legendRules(sheet *css.Stylesheet) {
	sheet.AddRule(css.Rule{Selector: ".legend", Properties: map[string]string{
		"float":                 "right",
		"margin-left":           "10px",
		"border":                "1px solid gray",
		"font-size":             "90%",
		"background-color":      "#eee",
		"padding":               "10px",
		"border-radius":         "6px",
		"-moz-border-radius":    "6px",
		"-webkit-border-radius": "6px",
		"box-shadow":            "0 5px 10px rgba(0, 0, 0, 0.2)",
		"-moz-box-shadow":       "0 5px 10px rgba(0, 0, 0, 0.2)",
		"-webkit-box-shadow":    "0 5px 10px rgba(0, 0, 0, 0.2)",
		"line-height":           "normal",
		"font-family":           "sans-serif",
	}})
	sheet.AddRule(css.Rule{Selector: ".legend span", Properties: map[string]string{
		"display": "block",
		"padding": "2px",
		"margin":  "2px",
	}})
	sheet.AddRule(css.Rule{Selector: ".clearfix", Properties: map[string]string{
		"*zoom": "1",
	}})
	sheet.AddRule(css.Rule{Selector: ".clearfix:before,\n.clearfix:after", Properties: map[string]string{
		"display":     "table",
		"line-height": "0",
		"content":     `""`,
	}})
	sheet.AddRule(css.Rule{Selector: ".clearfix:after", Properties: map[string]string{
		"clear": "both",
	}})
}

// baseRules style the shared annotation box look and the border suppression
// classes used by continued and covered fragments.
func baseRules(sheet *css.Stylesheet) {
	sheet.AddRule(css.Rule{Selector: ".ann", Properties: map[string]string{
		"border":                "1px solid gray",
		"background-color":      "lightgray",
		"border-radius":         "3px",
		"-moz-border-radius":    "3px",
		"-webkit-border-radius": "3px",
	}})
	sheet.AddRule(css.Rule{Selector: ".ann-openright", Properties: map[string]string{
		"border-right": "none",
	}})
	sheet.AddRule(css.Rule{Selector: ".ann-openleft", Properties: map[string]string{
		"border-left": "none",
	}})
	sheet.AddRule(css.Rule{Selector: ".ann-contright", Properties: map[string]string{
		"border-right":               "none",
		"border-top-right-radius":    "0",
		"border-bottom-right-radius": "0",
	}})
	sheet.AddRule(css.Rule{Selector: ".ann-contleft", Properties: map[string]string{
		"border-left":               "none",
		"border-top-left-radius":    "0",
		"border-bottom-left-radius": "0",
	}})
}

// generateCSS emits legend styles (when a legend is requested), base
// annotation styles, one block per stacking height up to maxHeight, and one
// block per type/color pair. Taller stacks get more vertical padding and a
// proportionally larger line height so annotation boxes never collide.
func (o *Options) generateCSS(maxHeight int, types, colors []string, legend bool) (string, error) {
	var sheet css.Stylesheet

	if legend {
		legendRules(&sheet)
	}
	baseRules(&sheet)

	for h := 0; h <= maxHeight; h++ {
		rule := css.Rule{Selector: fmt.Sprintf(".ann-h%d", h), Properties: map[string]string{
			"padding-top":    fmt.Sprintf("%dpx", h*o.VSpace),
			"padding-bottom": fmt.Sprintf("%dpx", h*o.VSpace),
		}}
		if h > 0 {
			rule.SetProperty("line-height", fmt.Sprintf("%dpx", o.BaseLineHeight+2*h*o.VSpace))
		}
		sheet.AddRule(rule)
	}

	for i, t := range types {
		darker, err := darkerColor(colors[i], o.Darken)
		if err != nil {
			return "", err
		}
		sheet.AddRule(css.Rule{Selector: ".ann-t" + t, Properties: map[string]string{
			"background-color": colors[i],
			"border-color":     darker,
		}})
	}

	return sheet.String(), nil
}
