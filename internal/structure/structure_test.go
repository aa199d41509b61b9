package structure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Model:
// - Add* append in order without dedup
// - Reset clears every collection and can be called repeatedly
// - ToDict omits keys for empty collections
// - Imports format as "path as alias" / "path", strings pass through, anything else is "Invalid import format"
// - Classes and methods drop empty fields; functions pass through with null docstring
// - ToDict output marshals to JSON in insertion order

func strPtr(s string) *string { return &s }

func TestModel_AddAppendsInOrder(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddFunction(FunctionInfo{Name: "a"})
	m.AddFunction(FunctionInfo{Name: "b"})
	m.AddFunction(FunctionInfo{Name: "a"})
	m.AddClass(ClassInfo{Name: "C"})
	m.AddVariable(VariableInfo{Name: "v", Value: 42})
	m.AddImport(ImportRecord{ImportPair{Path: "os"}})

	require.Len(t, m.Functions, 3)
	assert.Equal(t, "a", m.Functions[0].Name)
	assert.Equal(t, "b", m.Functions[1].Name)
	assert.Equal(t, "a", m.Functions[2].Name)
	assert.Len(t, m.Classes, 1)
	assert.Len(t, m.Variables, 1)
	assert.Len(t, m.Imports, 1)
}

func TestModel_Reset(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddImport(ImportRecord{ImportPair{Path: "module", Alias: "alias"}})
	m.AddClass(ClassInfo{Name: "TestClass"})
	m.AddFunction(FunctionInfo{Name: "test_function"})
	m.AddVariable(VariableInfo{Name: "test_var"})

	m.Reset()
	m.Reset()

	assert.Empty(t, m.Imports)
	assert.Empty(t, m.Classes)
	assert.Empty(t, m.Functions)
	assert.Empty(t, m.Variables)
	assert.Equal(t, 0, New().ToDict().Len())
}

func TestModel_ToDict_EmptyCollectionsOmitted(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddFunction(FunctionInfo{Name: "only"})

	d := m.ToDict()
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get("functions")
	assert.True(t, ok)
	for _, key := range []string{"imports", "classes", "variables"} {
		_, present := d.Get(key)
		assert.False(t, present, key)
	}
}

func TestFormatImports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record ImportRecord
		want   []string
	}{
		{"plain", ImportRecord{ImportPair{Path: "os"}}, []string{"os"}},
		{"aliased", ImportRecord{ImportPair{Path: "sys.path", Alias: "sys_path"}}, []string{"sys.path as sys_path"}},
		{"string entry", ImportRecord{"raw.module"}, []string{"raw.module"}},
		{"invalid entry", ImportRecord{42}, []string{InvalidImport}},
		{"mixed", ImportRecord{ImportPair{Path: "a"}, ImportPair{Path: "b", Alias: "c"}}, []string{"a", "b as c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatImports(tt.record))
		})
	}
}

func TestModel_ToDict_JSON(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddImport(ImportRecord{ImportPair{Path: "module"}})
	m.AddImport(ImportRecord{})
	m.AddClass(ClassInfo{Name: "TestClass"})
	m.AddFunction(FunctionInfo{Name: "test_function", ReturnType: "Returns None"})
	m.AddVariable(VariableInfo{Name: "test_var", Value: 42})

	out, err := json.Marshal(m.ToDict())
	require.NoError(t, err)

	expected := `{
		"imports": [["module"]],
		"classes": [{"name": "TestClass"}],
		"functions": [{"name": "test_function", "docstring": null, "parameters": [], "return_type": "Returns None"}],
		"variables": [{"name": "test_var", "value": 42}]
	}`
	assert.JSONEq(t, expected, string(out))
}

func TestModel_ToDict_ClassFieldsFiltered(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddClass(ClassInfo{
		Name:        "Repo",
		Docstring:   strPtr("Stores users."),
		BaseClasses: []string{"Base"},
		Methods: []FunctionInfo{
			{Name: "save", Parameters: []string{"self"}, ReturnType: "Returns None"},
			{Name: "load", Docstring: strPtr(""), ReturnType: "Returns None"},
		},
		Attributes: []AttributeInfo{{Name: "limit", Value: "10"}},
	})
	m.AddClass(ClassInfo{Name: "Empty", Docstring: strPtr("")})

	out, err := json.Marshal(m.ToDict())
	require.NoError(t, err)

	expected := `{
		"classes": [
			{
				"name": "Repo",
				"docstring": "Stores users.",
				"base_classes": ["Base"],
				"methods": [
					{"name": "save", "parameters": ["self"], "return_type": "Returns None"},
					{"name": "load", "return_type": "Returns None"}
				],
				"attributes": [{"name": "limit", "value": "10"}]
			},
			{"name": "Empty"}
		]
	}`
	assert.JSONEq(t, expected, string(out))
}

func TestModel_ToDict_KeyOrder(t *testing.T) {
	t.Parallel()

	m := New()
	m.AddVariable(VariableInfo{Name: "v", Value: "1"})
	m.AddFunction(FunctionInfo{Name: "f"})
	m.AddClass(ClassInfo{Name: "C"})
	m.AddImport(ImportRecord{ImportPair{Path: "os"}})

	var keys []string
	for pair := m.ToDict().Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"imports", "classes", "functions", "variables"}, keys)
}
