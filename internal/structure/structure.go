// Package structure holds the format-agnostic description of one parsed
// source file: its imports, classes, top-level functions and variables.
//
// A Model is filled by the extractor during a single pass, converted to a
// plain ordered map with ToDict for rendering, then reset for the next file.
package structure

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// InvalidImport replaces import entries that are neither pairs nor strings.
const InvalidImport = "Invalid import format"

// Dict is the ordered map form consumed by the renderers.
type Dict = *orderedmap.OrderedMap[string, any]

// NewDict returns an empty Dict.
func NewDict() Dict {
	return orderedmap.New[string, any]()
}

// ImportPair is one imported dotted path with an optional alias.
type ImportPair struct {
	Path  string
	Alias string // empty when the import has no "as" clause
}

// ImportRecord holds the entries of one import statement. Entries are
// normally ImportPair values; a plain string is rendered as-is and any
// other value renders as InvalidImport.
type ImportRecord []any

// AttributeInfo is a class-level assignment.
type AttributeInfo struct {
	Name  string
	Value string
}

// FunctionInfo describes a function or method.
type FunctionInfo struct {
	Name       string
	Docstring  *string
	Parameters []string
	ReturnType string
}

// ClassInfo describes a class definition.
type ClassInfo struct {
	Name        string
	Docstring   *string
	BaseClasses []string
	Methods     []FunctionInfo
	Attributes  []AttributeInfo
}

// VariableInfo describes a module-level variable.
type VariableInfo struct {
	Name  string
	Value any
}

// Model accumulates the facts extracted from one file.
type Model struct {
	Imports   []ImportRecord
	Classes   []ClassInfo
	Functions []FunctionInfo
	Variables []VariableInfo
}

// New returns an empty Model.
func New() *Model {
	return &Model{}
}

func (m *Model) AddImport(record ImportRecord) { m.Imports = append(m.Imports, record) }

func (m *Model) AddClass(class ClassInfo) { m.Classes = append(m.Classes, class) }

func (m *Model) AddFunction(fn FunctionInfo) { m.Functions = append(m.Functions, fn) }

func (m *Model) AddVariable(variable VariableInfo) { m.Variables = append(m.Variables, variable) }

// Reset empties every collection, keeping the backing storage.
func (m *Model) Reset() {
	m.Imports = m.Imports[:0]
	m.Classes = m.Classes[:0]
	m.Functions = m.Functions[:0]
	m.Variables = m.Variables[:0]
}

// ToDict converts the model into its rendering form. Only non-empty
// collections get a key. Classes and their methods drop empty fields;
// functions and variables are passed through whole.
func (m *Model) ToDict() Dict {
	data := NewDict()

	if len(m.Imports) > 0 {
		imports := make([]any, 0, len(m.Imports))
		for _, record := range m.Imports {
			if len(record) == 0 {
				continue
			}
			imports = append(imports, FormatImports(record))
		}
		data.Set("imports", imports)
	}

	if len(m.Classes) > 0 {
		classes := make([]any, 0, len(m.Classes))
		for _, class := range m.Classes {
			classes = append(classes, formatClass(class))
		}
		data.Set("classes", classes)
	}

	if len(m.Functions) > 0 {
		functions := make([]any, 0, len(m.Functions))
		for _, fn := range m.Functions {
			functions = append(functions, formatFunction(fn))
		}
		data.Set("functions", functions)
	}

	if len(m.Variables) > 0 {
		variables := make([]any, 0, len(m.Variables))
		for _, v := range m.Variables {
			entry := NewDict()
			entry.Set("name", v.Name)
			entry.Set("value", v.Value)
			variables = append(variables, entry)
		}
		data.Set("variables", variables)
	}

	return data
}

// FormatImports renders one import record as display strings.
func FormatImports(record ImportRecord) []string {
	formatted := make([]string, 0, len(record))
	for _, item := range record {
		switch v := item.(type) {
		case ImportPair:
			if v.Alias != "" {
				formatted = append(formatted, v.Path+" as "+v.Alias)
			} else {
				formatted = append(formatted, v.Path)
			}
		case string:
			formatted = append(formatted, v)
		default:
			formatted = append(formatted, InvalidImport)
		}
	}
	return formatted
}

func formatClass(class ClassInfo) Dict {
	d := NewDict()
	if class.Name != "" {
		d.Set("name", class.Name)
	}
	if class.Docstring != nil && *class.Docstring != "" {
		d.Set("docstring", *class.Docstring)
	}
	if len(class.BaseClasses) > 0 {
		d.Set("base_classes", class.BaseClasses)
	}
	if len(class.Methods) > 0 {
		methods := make([]any, 0, len(class.Methods))
		for _, method := range class.Methods {
			methods = append(methods, formatMethod(method))
		}
		d.Set("methods", methods)
	}
	if len(class.Attributes) > 0 {
		attributes := make([]any, 0, len(class.Attributes))
		for _, attr := range class.Attributes {
			entry := NewDict()
			entry.Set("name", attr.Name)
			entry.Set("value", attr.Value)
			attributes = append(attributes, entry)
		}
		d.Set("attributes", attributes)
	}
	return d
}

func formatMethod(fn FunctionInfo) Dict {
	d := NewDict()
	if fn.Name != "" {
		d.Set("name", fn.Name)
	}
	if fn.Docstring != nil && *fn.Docstring != "" {
		d.Set("docstring", *fn.Docstring)
	}
	if len(fn.Parameters) > 0 {
		d.Set("parameters", fn.Parameters)
	}
	if fn.ReturnType != "" {
		d.Set("return_type", fn.ReturnType)
	}
	return d
}

func formatFunction(fn FunctionInfo) Dict {
	d := NewDict()
	d.Set("name", fn.Name)
	var doc any
	if fn.Docstring != nil {
		doc = *fn.Docstring
	}
	d.Set("docstring", doc)
	params := fn.Parameters
	if params == nil {
		params = []string{}
	}
	d.Set("parameters", params)
	d.Set("return_type", fn.ReturnType)
	return d
}
