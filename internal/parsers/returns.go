package parsers

import (
	"fmt"

	"github.com/mvp-joe/genny/internal/pyast"
)

// ReturnType describes the first return statement found in fn, in
// breadth-first walk order, nested definitions included.
func ReturnType(fn *pyast.FunctionDef) string {
	for _, node := range pyast.Walk(fn) {
		ret, ok := node.(*pyast.Return)
		if !ok {
			continue
		}
		if ret.Value == nil {
			return returnsNone
		}
		return describeReturn(ret.Value)
	}
	return returnsNone
}

func describeReturn(e pyast.Expr) string {
	switch v := e.(type) {
	case *pyast.Name:
		return returnsVariable + v.ID
	case *pyast.Call:
		switch callee := v.Func.(type) {
		case *pyast.Attribute:
			receiver := complexReceiver
			if name, ok := callee.Value.(*pyast.Name); ok {
				receiver = name.ID
			}
			return fmt.Sprintf(returnsMethod, callee.Attr, receiver)
		case *pyast.Name:
			return returnsFunction + callee.ID
		default:
			return returnsFunction + v.FuncSource
		}
	case *pyast.Attribute:
		return returnsAttribute + v.Source
	}
	return returnsValue + e.Kind()
}
