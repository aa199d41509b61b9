package pyast

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/genny/internal/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var pythonLanguage = sitter.NewLanguage(python.Language())

// Parse parses Python source into a Module. Source with syntax errors, or
// with Python 2 print and exec statements, fails with ErrParseFailure
// naming the first offending position.
func Parse(source []byte) (*Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(pythonLanguage); err != nil {
		return nil, errors.Wrap(err, "failed to load python grammar")
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errors.Wrap(errors.ErrParseFailure, "parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Wrap(errors.ErrParseFailure, describeSyntaxError(root))
	}

	if legacy := findPython2Statement(root); legacy != nil {
		pos := legacy.StartPosition()
		return nil, errors.Wrapf(errors.ErrParseFailure, "invalid syntax at line %d, column %d: Python 2 %s",
			pos.Row+1, pos.Column+1, strings.ReplaceAll(legacy.Kind(), "_", " "))
	}

	c := &converter{source: source}
	return c.module(root), nil
}

// python2Statements are node kinds the grammar only produces for Python 2
// syntax, which Python 3 rejects.
var python2Statements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// findPython2Statement returns the first Python 2 only statement in the tree.
func findPython2Statement(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if python2Statements[n.Kind()] {
			found = n
			return false
		}
		return true
	})
	return found
}

// describeSyntaxError locates the first ERROR or MISSING node.
func describeSyntaxError(root *sitter.Node) string {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})
	if bad == nil {
		return "invalid syntax"
	}
	pos := bad.StartPosition()
	if bad.IsMissing() {
		return fmt.Sprintf("invalid syntax at line %d, column %d: missing %q", pos.Row+1, pos.Column+1, bad.Kind())
	}
	return fmt.Sprintf("invalid syntax at line %d, column %d", pos.Row+1, pos.Column+1)
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// namedChildren returns the named, non-comment children of node.
func namedChildren(node *sitter.Node) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child == nil || child.Kind() == "comment" {
			continue
		}
		results = append(results, child)
	}
	return results
}

// childrenByField returns every child stored under field.
func childrenByField(node *sitter.Node, field string) []*sitter.Node {
	cursor := node.Walk()
	defer cursor.Close()

	found := node.ChildrenByFieldName(field, cursor)
	results := make([]*sitter.Node, 0, len(found))
	for i := range found {
		if found[i].Kind() == "comment" {
			continue
		}
		results = append(results, &found[i])
	}
	return results
}

// hasToken reports whether node has a direct anonymous child with the given kind.
func hasToken(node *sitter.Node, token string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if !child.IsNamed() && child.Kind() == token {
			return true
		}
	}
	return false
}
