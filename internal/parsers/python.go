package parsers

import (
	"github.com/mvp-joe/genny/internal/fsys"
	"github.com/mvp-joe/genny/internal/pyast"
	"github.com/mvp-joe/genny/internal/structure"
)

// Return classifications produced by ReturnType.
const (
	returnsNone      = "Returns None"
	returnsVariable  = "Returns a variable of type inferred by its use: "
	returnsMethod    = "Returns the result of a method call: %s on object %s"
	returnsFunction  = "Returns the result of function call: "
	returnsAttribute = "Returns an attribute: "
	returnsValue     = "Returns a value of type: "

	complexReceiver = "complex expression"
)

// PythonExtractor turns Python source files into a structure.Model.
// It owns one model which is reset at the start of every parse.
type PythonExtractor struct {
	fs    fsys.FileSystem
	model *structure.Model
}

// NewPythonExtractor creates an extractor reading through fs.
func NewPythonExtractor(fs fsys.FileSystem) *PythonExtractor {
	return &PythonExtractor{
		fs:    fs,
		model: structure.New(),
	}
}

// Model returns the extractor's structure model.
func (p *PythonExtractor) Model() *structure.Model {
	return p.model
}

// ParseCode reads and parses path, then rebuilds the model from it.
// A missing file fails with errors.ErrNotFound and malformed source with
// errors.ErrParseFailure; the model is left untouched in both cases.
func (p *PythonExtractor) ParseCode(path string) (*structure.Model, error) {
	mod, err := p.parseFile(path)
	if err != nil {
		return nil, err
	}
	return p.BuildStructure(mod), nil
}

func (p *PythonExtractor) parseFile(path string) (*pyast.Module, error) {
	source, err := p.fs.Read(path)
	if err != nil {
		return nil, err
	}
	return pyast.Parse([]byte(source))
}

// BuildStructure resets the model and fills it from mod. Nodes are
// visited breadth-first; a function counts as a method only when its
// direct owner is a class body.
func (p *PythonExtractor) BuildStructure(mod *pyast.Module) *structure.Model {
	p.model.Reset()
	parents := pyast.ParentMap(mod)

	for _, node := range pyast.Walk(mod) {
		switch n := node.(type) {
		case *pyast.ClassDef:
			p.model.AddClass(p.ClassDetails(n))
		case *pyast.FunctionDef:
			if n.Async {
				continue
			}
			if _, isMethod := parents[n].(*pyast.ClassDef); isMethod {
				continue
			}
			p.model.AddFunction(p.FunctionDetails(n))
		case *pyast.Import, *pyast.ImportFrom:
			p.model.AddImport(ImportDetails(n))
		}
	}
	return p.model
}

// ClassDetails collects a class's docstring, bases, methods and attributes.
func (p *PythonExtractor) ClassDetails(class *pyast.ClassDef) structure.ClassInfo {
	info := structure.ClassInfo{
		Name:        class.Name,
		Docstring:   docstring(class.Body),
		BaseClasses: []string{},
		Methods:     []structure.FunctionInfo{},
		Attributes:  []structure.AttributeInfo{},
	}

	for _, base := range class.Bases {
		if name, ok := pyast.DottedName(base); ok {
			info.BaseClasses = append(info.BaseClasses, name)
		}
	}

	for _, child := range class.Body {
		switch n := child.(type) {
		case *pyast.FunctionDef:
			if !n.Async {
				info.Methods = append(info.Methods, p.FunctionDetails(n))
			}
		case *pyast.Assign:
			for _, target := range n.Targets {
				if name, ok := target.(*pyast.Name); ok {
					info.Attributes = append(info.Attributes, structure.AttributeInfo{
						Name:  name.ID,
						Value: valueText(n.Value),
					})
				}
			}
		case *pyast.AnnAssign:
			if name, ok := n.Target.(*pyast.Name); ok {
				info.Attributes = append(info.Attributes, structure.AttributeInfo{
					Name:  name.ID,
					Value: valueText(n.Value),
				})
			}
		}
	}
	return info
}

// FunctionDetails describes a function or method.
func (p *PythonExtractor) FunctionDetails(fn *pyast.FunctionDef) structure.FunctionInfo {
	params := make([]string, len(fn.Args))
	copy(params, fn.Args)
	return structure.FunctionInfo{
		Name:       fn.Name,
		Docstring:  docstring(fn.Body),
		Parameters: params,
		ReturnType: ReturnType(fn),
	}
}

// ImportDetails converts an import statement into one record. For
// "from m import a" the path is "m.a"; the relative level is ignored and
// a bare relative import keeps Python's "None" module text.
func ImportDetails(stmt pyast.Stmt) structure.ImportRecord {
	var record structure.ImportRecord
	switch n := stmt.(type) {
	case *pyast.Import:
		for _, alias := range n.Names {
			record = append(record, structure.ImportPair{Path: alias.Name, Alias: alias.AsName})
		}
	case *pyast.ImportFrom:
		module := n.Module
		if !n.HasModule {
			module = "None"
		}
		for _, alias := range n.Names {
			record = append(record, structure.ImportPair{Path: module + "." + alias.Name, Alias: alias.AsName})
		}
	}
	return record
}

// Docstrings returns every module, class and function docstring in path,
// in walk order. Empty docstrings are skipped.
func (p *PythonExtractor) Docstrings(path string) ([]string, error) {
	mod, err := p.parseFile(path)
	if err != nil {
		return nil, err
	}

	docs := []string{}
	for _, node := range pyast.Walk(mod) {
		var body []pyast.Stmt
		switch n := node.(type) {
		case *pyast.Module:
			body = n.Body
		case *pyast.ClassDef:
			body = n.Body
		case *pyast.FunctionDef:
			body = n.Body
		default:
			continue
		}
		if doc, ok := pyast.Docstring(body); ok && doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func docstring(body []pyast.Stmt) *string {
	doc, ok := pyast.Docstring(body)
	if !ok {
		return nil
	}
	return &doc
}

// valueText renders an assigned value: a literal's text, a referenced
// name, or a structural dump of anything else.
func valueText(e pyast.Expr) string {
	switch v := e.(type) {
	case nil:
		return "None"
	case *pyast.Constant:
		return v.Str
	case *pyast.Name:
		return v.ID
	}
	return pyast.Dump(e)
}
