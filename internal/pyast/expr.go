package pyast

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var binaryOperators = map[string]string{
	"+":  "Add",
	"-":  "Sub",
	"*":  "Mult",
	"/":  "Div",
	"//": "FloorDiv",
	"%":  "Mod",
	"**": "Pow",
	"<<": "LShift",
	">>": "RShift",
	"|":  "BitOr",
	"^":  "BitXor",
	"&":  "BitAnd",
	"@":  "MatMult",
}

var unaryOperators = map[string]string{
	"-": "USub",
	"+": "UAdd",
	"~": "Invert",
}

var comparisonOperators = map[string]string{
	"<":      "Lt",
	"<=":     "LtE",
	"==":     "Eq",
	"!=":     "NotEq",
	"<>":     "NotEq",
	">":      "Gt",
	">=":     "GtE",
	"in":     "In",
	"not in": "NotIn",
	"is":     "Is",
	"is not": "IsNot",
}

// opaqueExpressions maps node kinds kept as Other to their Python names.
var opaqueExpressions = map[string]string{
	"lambda":                   "Lambda",
	"list_comprehension":       "ListComp",
	"set_comprehension":        "SetComp",
	"dictionary_comprehension": "DictComp",
	"generator_expression":     "GeneratorExp",
	"await":                    "Await",
	"named_expression":         "NamedExpr",
	"slice":                    "Slice",
	"yield":                    "Yield",
}

func (c *converter) firstExpr(n *sitter.Node) Expr {
	if inner := namedChildren(n); len(inner) > 0 {
		return c.expr(inner[0])
	}
	return &Other{Type: "Expr", Source: c.text(n)}
}

func (c *converter) expr(n *sitter.Node) Expr {
	if n == nil {
		return nil
	}

	switch n.Kind() {
	case "identifier":
		return &Name{ID: c.text(n)}
	case "attribute":
		attr := &Attribute{
			Value: c.expr(n.ChildByFieldName("object")),
			Attr:  c.text(n.ChildByFieldName("attribute")),
		}
		attr.Source = Unparse(attr)
		return attr
	case "call":
		return c.call(n)
	case "integer", "float":
		return numberConstant(c.text(n))
	case "string":
		return c.stringExpr(n)
	case "concatenated_string":
		return c.concatenatedString(n)
	case "true":
		return &Constant{Str: "True", Repr: "True"}
	case "false":
		return &Constant{Str: "False", Repr: "False"}
	case "none":
		return &Constant{Str: "None", Repr: "None"}
	case "ellipsis":
		return &Constant{Str: "Ellipsis", Repr: "Ellipsis"}
	case "binary_operator":
		return &BinOp{
			Left:  c.expr(n.ChildByFieldName("left")),
			Op:    binaryOperators[c.text(n.ChildByFieldName("operator"))],
			Right: c.expr(n.ChildByFieldName("right")),
		}
	case "unary_operator":
		return &UnaryOp{
			Op:      unaryOperators[c.text(n.ChildByFieldName("operator"))],
			Operand: c.expr(n.ChildByFieldName("argument")),
		}
	case "not_operator":
		return &UnaryOp{Op: "Not", Operand: c.expr(n.ChildByFieldName("argument"))}
	case "boolean_operator":
		return c.boolOp(n)
	case "comparison_operator":
		return c.compare(n)
	case "list", "list_pattern":
		return c.sequence("List", namedChildren(n))
	case "tuple", "tuple_pattern", "expression_list", "pattern_list":
		return c.sequence("Tuple", namedChildren(n))
	case "set":
		return c.sequence("Set", namedChildren(n))
	case "dictionary":
		return c.dict(n)
	case "subscript":
		return c.subscript(n)
	case "list_splat", "list_splat_pattern":
		return &Starred{Value: c.firstExpr(n)}
	case "conditional_expression":
		parts := namedChildren(n)
		if len(parts) == 3 {
			return &IfExp{Body: c.expr(parts[0]), Test: c.expr(parts[1]), Orelse: c.expr(parts[2])}
		}
	case "parenthesized_expression", "type", "expression_statement":
		return c.firstExpr(n)
	case "yield":
		if hasToken(n, "from") {
			return &Other{Type: "YieldFrom", Source: c.text(n)}
		}
	}

	kind := n.Kind()
	if name, ok := opaqueExpressions[kind]; ok {
		kind = name
	}
	return &Other{Type: kind, Source: c.text(n)}
}

func (c *converter) call(n *sitter.Node) Expr {
	fn := n.ChildByFieldName("function")
	call := &Call{Func: c.expr(fn)}
	call.FuncSource = Unparse(call.Func)

	args := n.ChildByFieldName("arguments")
	if args == nil {
		return call
	}
	if args.Kind() == "generator_expression" {
		call.Args = []Expr{c.expr(args)}
		return call
	}

	for _, arg := range namedChildren(args) {
		switch arg.Kind() {
		case "keyword_argument":
			call.Keywords = append(call.Keywords, c.keyword(arg))
		case "dictionary_splat":
			call.Keywords = append(call.Keywords, Keyword{Value: c.firstExpr(arg)})
		default:
			call.Args = append(call.Args, c.expr(arg))
		}
	}
	return call
}

func (c *converter) keyword(n *sitter.Node) Keyword {
	return Keyword{
		Arg:   c.text(n.ChildByFieldName("name")),
		Value: c.expr(n.ChildByFieldName("value")),
	}
}

func (c *converter) stringExpr(n *sitter.Node) Expr {
	lit := decodeStringLiteral(c.text(n))
	if lit.format {
		return &Other{Type: "JoinedStr", Source: c.text(n)}
	}
	return stringConstant(lit)
}

func (c *converter) concatenatedString(n *sitter.Node) Expr {
	var b strings.Builder
	isBytes := false
	for _, part := range namedChildren(n) {
		lit := decodeStringLiteral(c.text(part))
		if lit.format {
			return &Other{Type: "JoinedStr", Source: c.text(n)}
		}
		isBytes = lit.bytes
		b.WriteString(lit.value)
	}
	return stringConstant(stringLiteral{value: b.String(), bytes: isBytes})
}

// boolOp flattens left-nested chains of the same operator, as Python does.
func (c *converter) boolOp(n *sitter.Node) Expr {
	opText := c.text(n.ChildByFieldName("operator"))
	op := "And"
	if opText == "or" {
		op = "Or"
	}

	var values []Expr
	left := n.ChildByFieldName("left")
	if left != nil && left.Kind() == "boolean_operator" && c.text(left.ChildByFieldName("operator")) == opText {
		if nested, ok := c.boolOp(left).(*BoolOp); ok {
			values = append(values, nested.Values...)
		}
	} else {
		values = append(values, c.expr(left))
	}
	values = append(values, c.expr(n.ChildByFieldName("right")))
	return &BoolOp{Op: op, Values: values}
}

func (c *converter) compare(n *sitter.Node) Expr {
	cmp := &Compare{}
	pending := ""
	operand := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		if child.IsNamed() {
			e := c.expr(child)
			if operand == 0 {
				cmp.Left = e
			} else {
				cmp.Comparators = append(cmp.Comparators, e)
			}
			operand++
			continue
		}

		token := strings.Join(strings.Fields(c.text(child)), " ")
		if token == "not" || token == "is" {
			if pending == "" {
				pending = token
				continue
			}
		}
		if pending != "" {
			if token == "in" || token == "not" {
				token = pending + " " + token
			} else {
				cmp.Ops = append(cmp.Ops, comparisonOperators[pending])
			}
			pending = ""
		}
		cmp.Ops = append(cmp.Ops, comparisonOperators[token])
	}
	if pending != "" {
		cmp.Ops = append(cmp.Ops, comparisonOperators[pending])
	}
	return cmp
}

func (c *converter) sequence(kind string, items []*sitter.Node) Expr {
	seq := &Sequence{Type: kind}
	for _, item := range items {
		seq.Elts = append(seq.Elts, c.expr(item))
	}
	return seq
}

func (c *converter) dict(n *sitter.Node) Expr {
	d := &Dict{}
	for _, item := range namedChildren(n) {
		switch item.Kind() {
		case "pair":
			d.Keys = append(d.Keys, c.expr(item.ChildByFieldName("key")))
			d.Values = append(d.Values, c.expr(item.ChildByFieldName("value")))
		case "dictionary_splat":
			d.Keys = append(d.Keys, nil)
			d.Values = append(d.Values, c.firstExpr(item))
		}
	}
	return d
}

func (c *converter) subscript(n *sitter.Node) Expr {
	sub := &Subscript{Value: c.expr(n.ChildByFieldName("value"))}
	slices := childrenByField(n, "subscript")
	switch len(slices) {
	case 0:
	case 1:
		sub.Slice = c.expr(slices[0])
	default:
		sub.Slice = c.sequence("Tuple", slices)
	}
	return sub
}
