// Package pyast is a small typed model of Python syntax built from a
// tree-sitter parse. It covers the statements and expressions the
// documentation extractor needs and keeps everything else as opaque
// placeholders so tree walks still see every nested statement.
//
// Kind names follow Python's own ast module (ClassDef, FunctionDef, BinOp,
// Constant, ...) because they surface verbatim in generated documentation.
package pyast

// Stmt is a statement-level node. Children returns the directly nested
// statements in field order, which is the order Walk visits them.
type Stmt interface {
	Kind() string
	Children() []Stmt
}

// Expr is an expression-level node.
type Expr interface {
	Kind() string
}

// Module is the root of a parsed file.
type Module struct {
	Body []Stmt
}

// ClassDef is a class statement.
type ClassDef struct {
	Name       string
	Bases      []Expr
	Keywords   []Keyword
	Body       []Stmt
	Decorators []Expr
}

// FunctionDef is a def or async def statement.
type FunctionDef struct {
	Name  string
	Async bool
	// Args are the positional-or-keyword parameter names, in order.
	// Positional-only, variadic and keyword-only parameters are excluded.
	Args       []string
	Body       []Stmt
	Decorators []Expr
}

// Alias is one imported name.
type Alias struct {
	Name   string
	AsName string // empty when there is no "as" clause
}

// Import is "import a, b as c".
type Import struct {
	Names []Alias
}

// ImportFrom is "from m import a, b as c".
type ImportFrom struct {
	Module    string
	HasModule bool // false for "from . import x"
	Level     int
	Names     []Alias
}

// Assign is "a = b = value".
type Assign struct {
	Targets []Expr
	Value   Expr
}

// AnnAssign is "target: annotation [= value]". Value is nil when absent.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr
}

// Return is a return statement. Value is nil for a bare return.
type Return struct {
	Value Expr
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Value Expr
}

// Compound is any block statement whose own fields are not needed
// (If, For, While, With, Try, ExceptHandler, Match, match_case, ...).
// Body holds every nested statement in field order; an elif chain is a
// nested If, the way Python represents it.
type Compound struct {
	Type string
	Body []Stmt
}

// Simple is a leaf statement such as pass, raise or global.
type Simple struct {
	Type string
}

func (m *Module) Kind() string       { return "Module" }
func (m *Module) Children() []Stmt   { return m.Body }
func (c *ClassDef) Kind() string     { return "ClassDef" }
func (c *ClassDef) Children() []Stmt { return c.Body }

func (f *FunctionDef) Kind() string {
	if f.Async {
		return "AsyncFunctionDef"
	}
	return "FunctionDef"
}

func (f *FunctionDef) Children() []Stmt { return f.Body }
func (i *Import) Kind() string          { return "Import" }
func (i *Import) Children() []Stmt      { return nil }
func (i *ImportFrom) Kind() string      { return "ImportFrom" }
func (i *ImportFrom) Children() []Stmt  { return nil }
func (a *Assign) Kind() string          { return "Assign" }
func (a *Assign) Children() []Stmt      { return nil }
func (a *AnnAssign) Kind() string       { return "AnnAssign" }
func (a *AnnAssign) Children() []Stmt   { return nil }
func (r *Return) Kind() string          { return "Return" }
func (r *Return) Children() []Stmt      { return nil }
func (e *ExprStmt) Kind() string        { return "Expr" }
func (e *ExprStmt) Children() []Stmt    { return nil }
func (c *Compound) Kind() string        { return c.Type }
func (c *Compound) Children() []Stmt    { return c.Body }
func (s *Simple) Kind() string          { return s.Type }
func (s *Simple) Children() []Stmt      { return nil }

// Name is a bare identifier.
type Name struct {
	ID string
}

// Attribute is "value.attr".
type Attribute struct {
	Value Expr
	Attr  string
	// Source is the dotted textual form, as rendered by Unparse.
	Source string
}

// Keyword is a keyword argument. Arg is empty for "**kwargs".
type Keyword struct {
	Arg   string
	Value Expr
}

// Call is "func(args, keywords)".
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
	// FuncSource is the callee as rendered by Unparse.
	FuncSource string
}

// Constant is a literal. Str is Python's str() of the value and Repr its repr().
type Constant struct {
	Str  string
	Repr string
	// IsString is true for text (not bytes) literals; docstrings require it.
	IsString bool
}

// BinOp is "left op right".
type BinOp struct {
	Left  Expr
	Op    string
	Right Expr
}

// UnaryOp is "op operand".
type UnaryOp struct {
	Op      string
	Operand Expr
}

// BoolOp is a flattened "a and b and c".
type BoolOp struct {
	Op     string
	Values []Expr
}

// Compare is "left op1 c1 op2 c2 ...".
type Compare struct {
	Left        Expr
	Ops         []string
	Comparators []Expr
}

// Sequence is a List, Tuple or Set display.
type Sequence struct {
	Type string
	Elts []Expr
}

// Dict is a dict display. A nil key marks "**mapping".
type Dict struct {
	Keys   []Expr
	Values []Expr
}

// Subscript is "value[slice]".
type Subscript struct {
	Value Expr
	Slice Expr
}

// Starred is "*value".
type Starred struct {
	Value Expr
}

// IfExp is "body if test else orelse".
type IfExp struct {
	Test   Expr
	Body   Expr
	Orelse Expr
}

// Other is any expression the model does not break down further.
type Other struct {
	Type   string
	Source string
}

func (n *Name) Kind() string      { return "Name" }
func (a *Attribute) Kind() string { return "Attribute" }
func (c *Call) Kind() string      { return "Call" }
func (c *Constant) Kind() string  { return "Constant" }
func (b *BinOp) Kind() string     { return "BinOp" }
func (u *UnaryOp) Kind() string   { return "UnaryOp" }
func (b *BoolOp) Kind() string    { return "BoolOp" }
func (c *Compare) Kind() string   { return "Compare" }
func (s *Sequence) Kind() string  { return s.Type }
func (d *Dict) Kind() string      { return "Dict" }
func (s *Subscript) Kind() string { return "Subscript" }
func (s *Starred) Kind() string   { return "Starred" }
func (i *IfExp) Kind() string     { return "IfExp" }
func (o *Other) Kind() string     { return o.Type }

// Walk returns root and every nested statement in breadth-first order,
// matching the order Python's ast.walk yields statements.
func Walk(root Stmt) []Stmt {
	if root == nil {
		return nil
	}
	queue := []Stmt{root}
	for i := 0; i < len(queue); i++ {
		queue = append(queue, queue[i].Children()...)
	}
	return queue
}

// ParentMap records the direct owner of every statement under root.
// The root itself has no entry.
func ParentMap(root Stmt) map[Stmt]Stmt {
	parents := make(map[Stmt]Stmt)
	for _, n := range Walk(root) {
		for _, child := range n.Children() {
			if _, seen := parents[child]; !seen {
				parents[child] = n
			}
		}
	}
	return parents
}

// Docstring returns the cleaned docstring of body, following
// ast.get_docstring: the first statement must be a bare string literal.
func Docstring(body []Stmt) (string, bool) {
	if len(body) == 0 {
		return "", false
	}
	expr, ok := body[0].(*ExprStmt)
	if !ok {
		return "", false
	}
	c, ok := expr.Value.(*Constant)
	if !ok || !c.IsString {
		return "", false
	}
	return CleanDoc(c.Str), true
}

// DottedName resolves a Name or a chain of Attributes into "a.b.c".
// Any other expression has no name.
func DottedName(e Expr) (string, bool) {
	switch n := e.(type) {
	case *Name:
		return n.ID, true
	case *Attribute:
		base, ok := DottedName(n.Value)
		if !ok {
			return "", false
		}
		return base + "." + n.Attr, true
	}
	return "", false
}
