package pyast

import "strings"

var binaryOperatorSymbols = map[string]string{
	"Add":      "+",
	"Sub":      "-",
	"Mult":     "*",
	"Div":      "/",
	"FloorDiv": "//",
	"Mod":      "%",
	"Pow":      "**",
	"LShift":   "<<",
	"RShift":   ">>",
	"BitOr":    "|",
	"BitXor":   "^",
	"BitAnd":   "&",
	"MatMult":  "@",
}

var unaryOperatorSymbols = map[string]string{
	"USub":   "-",
	"UAdd":   "+",
	"Invert": "~",
	"Not":    "not ",
}

var comparisonOperatorSymbols = map[string]string{
	"Lt":    "<",
	"LtE":   "<=",
	"Eq":    "==",
	"NotEq": "!=",
	"Gt":    ">",
	"GtE":   ">=",
	"In":    "in",
	"NotIn": "not in",
	"Is":    "is",
	"IsNot": "is not",
}

// Unparse renders e back to Python source in the normalised layout of
// ast.unparse: single spaces around operators, ", " between elements and
// string literals in their repr form. Expressions kept as Other render as
// their original text.
func Unparse(e Expr) string {
	var b strings.Builder
	unparse(&b, e)
	return b.String()
}

func unparse(b *strings.Builder, e Expr) {
	switch v := e.(type) {
	case nil:
		b.WriteString("None")
	case *Name:
		b.WriteString(v.ID)
	case *Constant:
		b.WriteString(v.Repr)
	case *Attribute:
		unparseOperand(b, v.Value)
		b.WriteByte('.')
		b.WriteString(v.Attr)
	case *Call:
		unparseOperand(b, v.Func)
		b.WriteByte('(')
		sep := ""
		for _, arg := range v.Args {
			b.WriteString(sep)
			unparse(b, arg)
			sep = ", "
		}
		for _, kw := range v.Keywords {
			b.WriteString(sep)
			if kw.Arg == "" {
				b.WriteString("**")
			} else {
				b.WriteString(kw.Arg + "=")
			}
			unparse(b, kw.Value)
			sep = ", "
		}
		b.WriteByte(')')
	case *Subscript:
		unparseOperand(b, v.Value)
		b.WriteByte('[')
		if tuple, ok := v.Slice.(*Sequence); ok && tuple.Type == "Tuple" && len(tuple.Elts) > 0 {
			unparseElements(b, tuple.Elts)
		} else if v.Slice != nil {
			unparse(b, v.Slice)
		}
		b.WriteByte(']')
	case *Sequence:
		unparseSequence(b, v)
	case *Dict:
		b.WriteByte('{')
		for i := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			if v.Keys[i] == nil {
				b.WriteString("**")
			} else {
				unparse(b, v.Keys[i])
				b.WriteString(": ")
			}
			unparse(b, v.Values[i])
		}
		b.WriteByte('}')
	case *Starred:
		b.WriteByte('*')
		unparseOperand(b, v.Value)
	case *BinOp:
		unparseOperand(b, v.Left)
		b.WriteString(" " + binaryOperatorSymbols[v.Op] + " ")
		unparseOperand(b, v.Right)
	case *UnaryOp:
		b.WriteString(unaryOperatorSymbols[v.Op])
		unparseOperand(b, v.Operand)
	case *BoolOp:
		op := " and "
		if v.Op == "Or" {
			op = " or "
		}
		for i, value := range v.Values {
			if i > 0 {
				b.WriteString(op)
			}
			unparseOperand(b, value)
		}
	case *Compare:
		unparseOperand(b, v.Left)
		for i, op := range v.Ops {
			b.WriteString(" " + comparisonOperatorSymbols[op] + " ")
			if i < len(v.Comparators) {
				unparseOperand(b, v.Comparators[i])
			}
		}
	case *IfExp:
		unparseOperand(b, v.Body)
		b.WriteString(" if ")
		unparseOperand(b, v.Test)
		b.WriteString(" else ")
		unparseOperand(b, v.Orelse)
	case *Other:
		b.WriteString(v.Source)
	}
}

// unparseOperand parenthesizes operator expressions nested in another
// expression.
func unparseOperand(b *strings.Builder, e Expr) {
	switch e.(type) {
	case *BinOp, *UnaryOp, *BoolOp, *Compare, *IfExp:
		b.WriteByte('(')
		unparse(b, e)
		b.WriteByte(')')
	default:
		unparse(b, e)
	}
}

func unparseElements(b *strings.Builder, elts []Expr) {
	for i, elt := range elts {
		if i > 0 {
			b.WriteString(", ")
		}
		unparse(b, elt)
	}
}

func unparseSequence(b *strings.Builder, seq *Sequence) {
	switch seq.Type {
	case "List":
		b.WriteByte('[')
		unparseElements(b, seq.Elts)
		b.WriteByte(']')
	case "Set":
		if len(seq.Elts) == 0 {
			b.WriteString("{*()}")
			return
		}
		b.WriteByte('{')
		unparseElements(b, seq.Elts)
		b.WriteByte('}')
	default:
		b.WriteByte('(')
		unparseElements(b, seq.Elts)
		if len(seq.Elts) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	}
}
