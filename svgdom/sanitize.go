package svgdom

import (
	"strings"

	"github.com/beevik/etree"
)

// Report counts what Sanitize removed.
type Report struct {
	Scripts    int // script elements removed
	Attributes int // event-handler attributes removed
}

// Sanitize strips executable content from the document in place:
// script elements are removed entirely and every attribute whose
// name starts with the event-handler prefix "on" is dropped. The
// root element is given preserveAspectRatio="xMidYMid meet" when it
// carries none, so later resizing scales the image without
// distorting it.
func (d *Document) Sanitize() Report {
	var rep Report
	var scripts []*etree.Element
	d.Walk(func(el *etree.Element, _ bool) {
		if el.Tag == "script" {
			scripts = append(scripts, el)
			return
		}
		var drop []string
		for _, a := range el.Attr {
			if strings.HasPrefix(strings.ToLower(a.Key), "on") {
				drop = append(drop, fullKey(a))
			}
		}
		for _, key := range drop {
			el.RemoveAttr(key)
			rep.Attributes++
		}
	})
	for _, el := range scripts {
		if parent := el.Parent(); parent != nil {
			parent.RemoveChild(el)
			rep.Scripts++
		}
	}
	if root := d.Root(); root != nil && root.SelectAttr("preserveAspectRatio") == nil {
		root.CreateAttr("preserveAspectRatio", "xMidYMid meet")
	}
	return rep
}

func fullKey(a etree.Attr) string {
	if a.Space != "" {
		return a.Space + ":" + a.Key
	}
	return a.Key
}
