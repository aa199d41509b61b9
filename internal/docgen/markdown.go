package docgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mvp-joe/genny/internal/structure"
	"github.com/mvp-joe/genny/internal/templates"
)

// FormatMarkdownDoc renders a document as markdown. Every entry is its own
// line and lines are separated by a blank line.
func FormatMarkdownDoc(doc structure.Dict) string {
	lines := []string{"# Documentation\n"}

	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		section, items := pair.Key, pair.Value
		lines = append(lines, fmt.Sprintf("## %s\n", templates.Capitalize(section)))

		switch section {
		case "imports":
			for _, record := range asList(items) {
				if entries, ok := record.([]string); ok {
					for _, entry := range entries {
						lines = append(lines, fmt.Sprintf("- %s\n", entry))
					}
					continue
				}
				for _, entry := range asList(record) {
					lines = append(lines, fmt.Sprintf("- %s\n", pyStr(entry)))
				}
			}
		case "classes":
			for _, item := range asList(items) {
				lines = append(lines, classMarkdown(item)...)
			}
		case "functions":
			for _, item := range asList(items) {
				lines = append(lines, functionMarkdown(item)...)
			}
		default:
			for _, item := range asList(items) {
				lines = append(lines, fmt.Sprintf("- %s\n", pyStr(item)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// asList returns the elements of a section value. A scalar is its own
// single element.
func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case nil:
		return nil
	}
	return []any{v}
}

func field(item structure.Dict, key string) (any, bool) {
	v, ok := item.Get(key)
	if !ok || v == nil {
		return nil, false
	}
	switch val := v.(type) {
	case string:
		return val, val != ""
	case []string:
		return val, len(val) > 0
	case []any:
		return val, len(val) > 0
	}
	return v, true
}

func joinItems(v any) string {
	items := asList(v)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, pyStr(item))
	}
	return strings.Join(parts, ", ")
}

func classMarkdown(v any) []string {
	item, ok := v.(structure.Dict)
	if !ok {
		return []string{fmt.Sprintf("### %s\n", pyStr(v))}
	}

	name, _ := item.Get("name")
	lines := []string{fmt.Sprintf("### %s\n", pyStr(name))}
	if doc, ok := field(item, "docstring"); ok {
		lines = append(lines, fmt.Sprintf("**Docstring:**\n> %s\n", pyStr(doc)))
	}
	if bases, ok := field(item, "base_classes"); ok {
		lines = append(lines, "**Base Classes:**\n", joinItems(bases)+"\n")
	}
	if attrs, ok := field(item, "attributes"); ok {
		lines = append(lines, "**Attributes:**\n")
		for _, a := range asList(attrs) {
			attr, ok := a.(structure.Dict)
			if !ok {
				continue
			}
			attrName, _ := attr.Get("name")
			value, ok := attr.Get("value")
			if !ok {
				value = "No description"
			}
			lines = append(lines, fmt.Sprintf("- `%s`: %s\n", pyStr(attrName), pyStr(value)))
		}
	}
	if methods, ok := field(item, "methods"); ok {
		lines = append(lines, "**Methods:**\n")
		for _, m := range asList(methods) {
			method, ok := m.(structure.Dict)
			if !ok {
				continue
			}
			methodName, _ := method.Get("name")
			params, _ := method.Get("parameters")
			lines = append(lines, fmt.Sprintf("- `%s` (%s)\n", pyStr(methodName), joinItems(params)))
			if doc, ok := field(method, "docstring"); ok {
				lines = append(lines, fmt.Sprintf("  - **Docstring:** %s\n", pyStr(doc)))
			}
			if ret, ok := field(method, "return_type"); ok {
				lines = append(lines, fmt.Sprintf("  - **Returns:** %s\n", pyStr(ret)))
			}
		}
	}
	return lines
}

func functionMarkdown(v any) []string {
	item, ok := v.(structure.Dict)
	if !ok {
		return []string{fmt.Sprintf("### %s\n", pyStr(v))}
	}

	name, _ := item.Get("name")
	lines := []string{fmt.Sprintf("### %s\n", pyStr(name))}
	if doc, ok := field(item, "docstring"); ok {
		lines = append(lines, fmt.Sprintf("**Docstring:**\n> %s\n", pyStr(doc)))
	}
	params, _ := item.Get("parameters")
	lines = append(lines, "**Parameters:**\n", joinItems(params)+"\n")
	if ret, ok := field(item, "return_type"); ok {
		lines = append(lines, fmt.Sprintf("**Returns:**\n%s\n", pyStr(ret)))
	}
	return append(lines, "\n")
}

// pyStr renders a value the way Python's str() would: strings as-is,
// containers in repr form.
func pyStr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return pyRepr(v)
}

func pyRepr(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return quote(val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []string:
		return pyRepr(asList(val))
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = pyRepr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case structure.Dict:
		parts := make([]string, 0, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			parts = append(parts, quote(pair.Key)+": "+pyRepr(pair.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}

func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}
