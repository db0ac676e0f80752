package css

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestParseRuleset(t *testing.T) {
	sheet := NewParser(zaptest.NewLogger(t)).Parse([]byte(`.ann { border: 1px solid gray; background-color: lightgray }`))
	if len(sheet.Items) != 1 || sheet.Items[0].Rule == nil {
		t.Fatalf("Parse() items = %+v, want one rule", sheet.Items)
	}

	rule := sheet.Items[0].Rule
	if rule.Selector != ".ann" {
		t.Errorf("selector = %q, want .ann", rule.Selector)
	}
	if rule.Properties["border"] != "1px solid gray" {
		t.Errorf("border = %q", rule.Properties["border"])
	}
	if rule.Properties["background-color"] != "lightgray" {
		t.Errorf("background-color = %q", rule.Properties["background-color"])
	}
}

func TestParseGroupedSelector(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte("h1, h2 { margin: 0 }"))
	if len(sheet.Items) != 1 {
		t.Fatalf("Parse() items = %+v, want one rule", sheet.Items)
	}
	sel := sheet.Items[0].Rule.Selector
	if !strings.Contains(sel, "h1") || !strings.Contains(sel, "h2") {
		t.Fatalf("selector = %q, want both h1 and h2", sel)
	}
}

func TestParseImports(t *testing.T) {
	data := `@import "first.css";
@import url(second.css);
@import url("third.css");
p { margin: 0 }`

	sheet := NewParser(nil).Parse([]byte(data), "test.css")
	want := []string{"first.css", "second.css", "third.css"}
	got := sheet.Imports()
	if len(got) != len(want) {
		t.Fatalf("Imports() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("import %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseSkipsAtRuleBlocks(t *testing.T) {
	data := `@media print { p { display: none } }
.kept { color: red }`

	sheet := NewParser(nil).Parse([]byte(data))
	if len(sheet.Warnings) == 0 {
		t.Error("no warning recorded for skipped @media block")
	}
	rules := 0
	for _, item := range sheet.Items {
		if item.Rule != nil {
			rules++
			if item.Rule.Selector != ".kept" {
				t.Errorf("unexpected rule %q survived", item.Rule.Selector)
			}
		}
	}
	if rules != 1 {
		t.Fatalf("got %d rules, want only the one outside @media", rules)
	}
}

func TestParseCustomProperties(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(":root { --ann-color: #ff0000 }"))
	if len(sheet.Items) != 1 {
		t.Fatalf("Parse() items = %+v, want one rule", sheet.Items)
	}
	if got := sheet.Items[0].Rule.Properties["--ann-color"]; got != "#ff0000" {
		t.Fatalf("custom property = %q, want #ff0000", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	sheet := NewParser(nil).Parse([]byte(".a { color: red }\n.b { margin: 0 auto }"))
	out := sheet.String()

	again := NewParser(nil).Parse([]byte(out))
	if again.String() != out {
		t.Fatalf("reparse changed output:\nfirst: %q\nsecond: %q", out, again.String())
	}
}

func TestParseEmptyInput(t *testing.T) {
	sheet := NewParser(nil).Parse(nil)
	if len(sheet.Items) != 0 {
		t.Fatalf("Parse(nil) items = %+v, want none", sheet.Items)
	}
}
