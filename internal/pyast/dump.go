package pyast

import (
	"strings"
)

// Dump renders e in the style of Python's ast.dump. Expressions kept as
// Other are abbreviated to "Type(...)".
func Dump(e Expr) string {
	var b strings.Builder
	dumpExpr(&b, e)
	return b.String()
}

func dumpExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case nil:
		b.WriteString("None")
	case *Name:
		b.WriteString("Name(id=")
		b.WriteString(strRepr(n.ID))
		b.WriteString(", ctx=Load())")
	case *Attribute:
		b.WriteString("Attribute(value=")
		dumpExpr(b, n.Value)
		b.WriteString(", attr=")
		b.WriteString(strRepr(n.Attr))
		b.WriteString(", ctx=Load())")
	case *Call:
		b.WriteString("Call(func=")
		dumpExpr(b, n.Func)
		b.WriteString(", args=")
		dumpList(b, n.Args)
		b.WriteString(", keywords=[")
		for i, kw := range n.Keywords {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("keyword(")
			if kw.Arg != "" {
				b.WriteString("arg=")
				b.WriteString(strRepr(kw.Arg))
				b.WriteString(", ")
			}
			b.WriteString("value=")
			dumpExpr(b, kw.Value)
			b.WriteString(")")
		}
		b.WriteString("])")
	case *Constant:
		b.WriteString("Constant(value=")
		b.WriteString(n.Repr)
		b.WriteString(")")
	case *BinOp:
		b.WriteString("BinOp(left=")
		dumpExpr(b, n.Left)
		b.WriteString(", op=")
		b.WriteString(n.Op)
		b.WriteString("(), right=")
		dumpExpr(b, n.Right)
		b.WriteString(")")
	case *UnaryOp:
		b.WriteString("UnaryOp(op=")
		b.WriteString(n.Op)
		b.WriteString("(), operand=")
		dumpExpr(b, n.Operand)
		b.WriteString(")")
	case *BoolOp:
		b.WriteString("BoolOp(op=")
		b.WriteString(n.Op)
		b.WriteString("(), values=")
		dumpList(b, n.Values)
		b.WriteString(")")
	case *Compare:
		b.WriteString("Compare(left=")
		dumpExpr(b, n.Left)
		b.WriteString(", ops=[")
		for i, op := range n.Ops {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(op)
			b.WriteString("()")
		}
		b.WriteString("], comparators=")
		dumpList(b, n.Comparators)
		b.WriteString(")")
	case *Sequence:
		b.WriteString(n.Type)
		b.WriteString("(elts=")
		dumpList(b, n.Elts)
		if n.Type != "Set" {
			b.WriteString(", ctx=Load()")
		}
		b.WriteString(")")
	case *Dict:
		b.WriteString("Dict(keys=")
		dumpList(b, n.Keys)
		b.WriteString(", values=")
		dumpList(b, n.Values)
		b.WriteString(")")
	case *Subscript:
		b.WriteString("Subscript(value=")
		dumpExpr(b, n.Value)
		b.WriteString(", slice=")
		dumpExpr(b, n.Slice)
		b.WriteString(", ctx=Load())")
	case *Starred:
		b.WriteString("Starred(value=")
		dumpExpr(b, n.Value)
		b.WriteString(", ctx=Load())")
	case *IfExp:
		b.WriteString("IfExp(test=")
		dumpExpr(b, n.Test)
		b.WriteString(", body=")
		dumpExpr(b, n.Body)
		b.WriteString(", orelse=")
		dumpExpr(b, n.Orelse)
		b.WriteString(")")
	default:
		b.WriteString(e.Kind())
		b.WriteString("(...)")
	}
}

func dumpList(b *strings.Builder, items []Expr) {
	b.WriteString("[")
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpExpr(b, item)
	}
	b.WriteString("]")
}
