package render

import "github.com/beevik/etree"

// buildLegend produces the floating legend box: one row per annotation type
// showing its original label in the color assigned to it. types holds the
// normalized class fragments in presentation order, labels the matching
// unnormalized type strings.
func (o *Options) buildLegend(types, labels []string) (string, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true

	div := doc.CreateElement("div")
	div.CreateAttr("class", "legend")
	div.CreateText("Legend")
	table := div.CreateElement("table")
	for i, t := range types {
		td := table.CreateElement("tr").CreateElement("td")
		sample := td.CreateElement(o.Tag)
		sample.CreateAttr("class", "ann ann-t"+t)
		sample.CreateText(labels[i])
	}
	return doc.WriteToString()
}
