package scenario

import (
	"strings"

	"github.com/beevik/etree"
)

// lookup returns the raw value of the first candidate present on el.
// For each candidate the attribute wins over a same-named child element,
// even when the attribute is empty.
func lookup(el *etree.Element, names ...string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, name := range names {
		if attr := el.SelectAttr(name); attr != nil {
			return attr.Value, true
		}
		if child := el.SelectElement(name); child != nil {
			return child.Text(), true
		}
	}
	return "", false
}

func text(el *etree.Element, names ...string) string {
	v, _ := lookup(el, names...)
	return strings.TrimSpace(v)
}

func number(el *etree.Element, names ...string) *float64 {
	v, ok := lookup(el, names...)
	if !ok {
		return nil
	}
	return parseNumber(v)
}

func flag(el *etree.Element, names ...string) *bool {
	v, ok := lookup(el, names...)
	if !ok {
		return nil
	}
	return parseBool(v)
}

func status(el *etree.Element, names ...string) string {
	return normalizeStatus(text(el, names...))
}

// children returns el/<list>/<item> elements in document order.
// A nil el or a missing list yields an empty slice.
func children(el *etree.Element, list, item string) []*etree.Element {
	if el == nil {
		return nil
	}
	container := el.SelectElement(list)
	if container == nil {
		return nil
	}
	return container.SelectElements(item)
}

// collect maps elements through fn and always returns a non-nil slice
func collect[T any](els []*etree.Element, fn func(*etree.Element) T) []T {
	out := make([]T, 0, len(els))
	for _, el := range els {
		out = append(out, fn(el))
	}
	return out
}

// Field candidates tried in priority order. The German names come from
// older scenario files.
var (
	nameKeys      = []string{"name", "bezeichnung"}
	statusKeys    = []string{"status", "zustand"}
	integrityKeys = []string{"integrity", "integritaet"}
	powerKeys     = []string{"power", "leistung"}
	noteKeys      = []string{"note", "notiz"}
)
