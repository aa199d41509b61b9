package docgen

import (
	"github.com/mvp-joe/genny/internal/structure"
	"github.com/mvp-joe/genny/internal/templates"
)

// Unnamed replaces items without a name in summary sections.
const Unnamed = "Unnamed"

// Resolve builds a document from a structure dict: a "title" entry first,
// then every template section present in data, in template order.
// Summary sections keep only item names; any other style copies the
// section as-is.
func Resolve(data structure.Dict, tmpl templates.Template, title string) structure.Dict {
	doc := structure.NewDict()
	doc.Set("title", title)

	for _, section := range tmpl.Sections {
		items, ok := data.Get(section)
		if !ok {
			continue
		}
		if tmpl.Style[section] == templates.StyleSummary {
			doc.Set(section, summarize(items))
			continue
		}
		doc.Set(section, items)
	}
	return doc
}

func summarize(items any) []any {
	list, ok := items.([]any)
	if !ok {
		return []any{}
	}
	names := make([]any, 0, len(list))
	for _, item := range list {
		names = append(names, itemName(item))
	}
	return names
}

func itemName(item any) any {
	if d, ok := item.(structure.Dict); ok {
		if name, ok := d.Get("name"); ok {
			return name
		}
	}
	return Unnamed
}

// Context converts a document into plain maps and slices so html/template
// can address fields by name.
func Context(doc structure.Dict) map[string]any {
	ctx, _ := plain(doc).(map[string]any)
	return ctx
}

func plain(v any) any {
	switch val := v.(type) {
	case structure.Dict:
		m := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = plain(pair.Value)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	}
	return v
}
