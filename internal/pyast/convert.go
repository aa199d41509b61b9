package pyast

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// converter turns tree-sitter nodes into the typed model.
type converter struct {
	source []byte
}

func (c *converter) text(n *sitter.Node) string {
	return extractNodeText(n, c.source)
}

func (c *converter) module(root *sitter.Node) *Module {
	return &Module{Body: c.statements(root)}
}

// statements converts every statement directly under node.
func (c *converter) statements(node *sitter.Node) []Stmt {
	var body []Stmt
	for _, child := range namedChildren(node) {
		if stmt := c.statement(child); stmt != nil {
			body = append(body, stmt)
		}
	}
	return body
}

// blockOf finds the statement block of a clause node.
func blockOf(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	for _, field := range []string{"body", "consequence"} {
		if b := n.ChildByFieldName(field); b != nil {
			return b
		}
	}
	return findChildByType(n, "block")
}

func (c *converter) statement(n *sitter.Node) Stmt {
	switch n.Kind() {
	case "decorated_definition":
		return c.decorated(n)
	case "class_definition":
		return c.classDef(n, nil)
	case "function_definition":
		return c.functionDef(n, nil)
	case "import_statement":
		return &Import{Names: c.aliases(n)}
	case "import_from_statement":
		return c.importFrom(n)
	case "future_import_statement":
		return &ImportFrom{Module: "__future__", HasModule: true, Names: c.aliases(n)}
	case "expression_statement":
		return c.expressionStatement(n)
	case "return_statement":
		ret := &Return{}
		if values := namedChildren(n); len(values) > 0 {
			ret.Value = c.expr(values[0])
		}
		return ret
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement":
		return c.loop(n, asyncName(n, "For"))
	case "while_statement":
		return c.loop(n, "While")
	case "with_statement":
		return &Compound{Type: asyncName(n, "With"), Body: c.statements(blockOf(n))}
	case "try_statement":
		return c.tryStatement(n)
	case "match_statement":
		return c.matchStatement(n)
	case "block":
		return &Compound{Type: "Block", Body: c.statements(n)}
	}
	return &Simple{Type: simpleStatementName(n.Kind())}
}

func asyncName(n *sitter.Node, base string) string {
	if hasToken(n, "async") {
		return "Async" + base
	}
	return base
}

var simpleStatements = map[string]string{
	"pass_statement":       "Pass",
	"break_statement":      "Break",
	"continue_statement":   "Continue",
	"raise_statement":      "Raise",
	"global_statement":     "Global",
	"nonlocal_statement":   "Nonlocal",
	"delete_statement":     "Delete",
	"assert_statement":     "Assert",
	"type_alias_statement": "TypeAlias",
}

func simpleStatementName(kind string) string {
	if name, ok := simpleStatements[kind]; ok {
		return name
	}
	return kind
}

func (c *converter) decorated(n *sitter.Node) Stmt {
	var decorators []Expr
	for _, child := range namedChildren(n) {
		if child.Kind() == "decorator" {
			if inner := namedChildren(child); len(inner) > 0 {
				decorators = append(decorators, c.expr(inner[0]))
			}
		}
	}

	def := n.ChildByFieldName("definition")
	if def == nil {
		return &Simple{Type: "decorated_definition"}
	}
	switch def.Kind() {
	case "class_definition":
		return c.classDef(def, decorators)
	case "function_definition":
		return c.functionDef(def, decorators)
	}
	return c.statement(def)
}

func (c *converter) classDef(n *sitter.Node, decorators []Expr) *ClassDef {
	class := &ClassDef{
		Name:       c.text(n.ChildByFieldName("name")),
		Body:       c.statements(n.ChildByFieldName("body")),
		Decorators: decorators,
	}

	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for _, arg := range namedChildren(supers) {
			switch arg.Kind() {
			case "keyword_argument":
				class.Keywords = append(class.Keywords, c.keyword(arg))
			case "dictionary_splat":
				class.Keywords = append(class.Keywords, Keyword{Value: c.firstExpr(arg)})
			default:
				class.Bases = append(class.Bases, c.expr(arg))
			}
		}
	}
	return class
}

func (c *converter) functionDef(n *sitter.Node, decorators []Expr) *FunctionDef {
	return &FunctionDef{
		Name:       c.text(n.ChildByFieldName("name")),
		Async:      hasToken(n, "async"),
		Args:       c.positionalArgs(n.ChildByFieldName("parameters")),
		Body:       c.statements(n.ChildByFieldName("body")),
		Decorators: decorators,
	}
}

// positionalArgs collects the positional-or-keyword parameter names:
// names before "/" are positional-only and everything from "*" or
// "*args" onward is variadic or keyword-only.
func (c *converter) positionalArgs(params *sitter.Node) []string {
	var args []string
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "identifier":
			args = append(args, c.text(p))
		case "typed_parameter":
			inner := namedChildren(p)
			if len(inner) == 0 {
				continue
			}
			if inner[0].Kind() != "identifier" {
				return args
			}
			args = append(args, c.text(inner[0]))
		case "default_parameter", "typed_default_parameter":
			args = append(args, c.text(p.ChildByFieldName("name")))
		case "positional_separator":
			args = nil
		case "keyword_separator", "list_splat_pattern", "dictionary_splat_pattern":
			return args
		}
	}
	return args
}

// aliases collects the imported names of an import statement.
func (c *converter) aliases(n *sitter.Node) []Alias {
	var names []Alias
	for _, name := range childrenByField(n, "name") {
		if name.Kind() == "aliased_import" {
			names = append(names, Alias{
				Name:   c.dotted(name.ChildByFieldName("name")),
				AsName: c.text(name.ChildByFieldName("alias")),
			})
			continue
		}
		names = append(names, Alias{Name: c.dotted(name)})
	}
	return names
}

// dotted normalizes a dotted_name node, dropping any interior whitespace.
func (c *converter) dotted(n *sitter.Node) string {
	return strings.Join(strings.Fields(c.text(n)), "")
}

func (c *converter) importFrom(n *sitter.Node) *ImportFrom {
	imp := &ImportFrom{Names: c.aliases(n)}

	if mod := n.ChildByFieldName("module_name"); mod != nil {
		if mod.Kind() == "relative_import" {
			if prefix := findChildByType(mod, "import_prefix"); prefix != nil {
				imp.Level = len(strings.TrimSpace(c.text(prefix)))
			}
			if name := findChildByType(mod, "dotted_name"); name != nil {
				imp.Module = c.dotted(name)
				imp.HasModule = true
			}
		} else {
			imp.Module = c.dotted(mod)
			imp.HasModule = true
		}
	}

	if findChildByType(n, "wildcard_import") != nil {
		imp.Names = append(imp.Names, Alias{Name: "*"})
	}
	return imp
}

func (c *converter) expressionStatement(n *sitter.Node) Stmt {
	children := namedChildren(n)
	if len(children) == 0 {
		return &Simple{Type: "Expr"}
	}
	if len(children) > 1 {
		return &ExprStmt{Value: c.sequence("Tuple", children)}
	}

	child := children[0]
	switch child.Kind() {
	case "assignment":
		return c.assignment(child)
	case "augmented_assignment":
		return &Simple{Type: "AugAssign"}
	}
	return &ExprStmt{Value: c.expr(child)}
}

func (c *converter) assignment(n *sitter.Node) Stmt {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")

	if annotation := n.ChildByFieldName("type"); annotation != nil {
		ann := &AnnAssign{Target: c.expr(left), Annotation: c.expr(annotation)}
		if right != nil {
			ann.Value = c.expr(right)
		}
		return ann
	}

	assign := &Assign{Targets: []Expr{c.expr(left)}}
	for right != nil && right.Kind() == "assignment" {
		assign.Targets = append(assign.Targets, c.expr(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}
	if right != nil {
		assign.Value = c.expr(right)
	}
	return assign
}

func (c *converter) ifStatement(n *sitter.Node) Stmt {
	body := c.statements(n.ChildByFieldName("consequence"))
	return &Compound{Type: "If", Body: append(body, c.orelse(childrenByField(n, "alternative"))...)}
}

// orelse rebuilds an elif/else chain as nested If statements.
func (c *converter) orelse(clauses []*sitter.Node) []Stmt {
	if len(clauses) == 0 {
		return nil
	}
	clause := clauses[0]
	if clause.Kind() == "elif_clause" {
		body := c.statements(clause.ChildByFieldName("consequence"))
		return []Stmt{&Compound{Type: "If", Body: append(body, c.orelse(clauses[1:])...)}}
	}
	return c.statements(blockOf(clause))
}

func (c *converter) loop(n *sitter.Node, kind string) Stmt {
	body := c.statements(n.ChildByFieldName("body"))
	if alt := n.ChildByFieldName("alternative"); alt != nil {
		body = append(body, c.statements(blockOf(alt))...)
	}
	return &Compound{Type: kind, Body: body}
}

func (c *converter) tryStatement(n *sitter.Node) Stmt {
	try := &Compound{Type: "Try"}
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "block":
			try.Body = append(try.Body, c.statements(child)...)
		case "except_clause", "except_group_clause":
			if child.Kind() == "except_group_clause" {
				try.Type = "TryStar"
			}
			try.Body = append(try.Body, &Compound{Type: "ExceptHandler", Body: c.statements(blockOf(child))})
		case "else_clause", "finally_clause":
			try.Body = append(try.Body, c.statements(blockOf(child))...)
		}
	}
	return try
}

func (c *converter) matchStatement(n *sitter.Node) Stmt {
	match := &Compound{Type: "Match"}
	body := n.ChildByFieldName("body")
	for _, child := range namedChildren(body) {
		if child.Kind() == "case_clause" {
			match.Body = append(match.Body, &Compound{Type: "match_case", Body: c.statements(blockOf(child))})
		}
	}
	return match
}
