// Collects the palette of a parsed document (every fill, stroke and
// stop-color used by rendered elements) and picks a neutral
// backdrop that contrasts with it.
package svgpalette

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/svgdim/svgdim/svgcolor"
	"github.com/svgdim/svgdim/svgdom"
)

// paint properties that contribute to the palette
var paintProps = [...]string{"fill", "stroke", "stop-color"}

// Extract returns the document's palette in first-seen traversal
// order, deduplicated by RGB triple (alpha ignored). Paint is read
// from direct attributes and from inline style declarations.
// Elements under defs containers are skipped since they are not
// directly rendered; "none" and url(...) paint-server references
// carry no color.
func Extract(doc *svgdom.Document) []svgcolor.Color {
	var palette []svgcolor.Color
	seen := make(map[[3]uint8]bool)
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if strings.EqualFold(raw, "none") || strings.HasPrefix(raw, "url(") {
			return
		}
		c, ok := svgcolor.Parse(raw)
		if !ok {
			return
		}
		key := [3]uint8{c.R, c.G, c.B}
		if seen[key] {
			return
		}
		seen[key] = true
		palette = append(palette, c)
	}
	doc.Walk(func(el *etree.Element, inDefs bool) {
		if inDefs {
			return
		}
		for _, name := range paintProps {
			if a := el.SelectAttr(name); a != nil {
				add(a.Value)
			}
		}
		for _, decl := range styleEntries(el.SelectAttrValue("style", "")) {
			for _, name := range paintProps {
				if decl.name == name {
					add(decl.value)
				}
			}
		}
	})
	return palette
}

type styleEntry struct {
	name, value string
}

// styleEntries splits an inline style attribute into its name/value
// pairs, in declaration order.
func styleEntries(style string) []styleEntry {
	var entries []styleEntry
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		entries = append(entries, styleEntry{
			name:  strings.TrimSpace(name),
			value: strings.TrimSpace(value),
		})
	}
	return entries
}
