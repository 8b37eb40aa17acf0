package emit

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"

	"golang.org/x/tools/go/ast/astutil"
)

// Instantiate parses a textual call template and substitutes placeholder
// identifiers with the given nodes. Template positions are scrubbed first:
// they belong to a throwaway FileSet and would scramble the host file's
// layout otherwise. Substituted nodes keep their original positions.
func Instantiate(text string, subs map[string]ast.Expr) (ast.Expr, error) {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, fmt.Errorf("parse call template %q: %w", text, err)
	}

	ScrubPositions(expr)

	out := astutil.Apply(expr, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Ident)
		if !ok {
			return true
		}
		if sel, ok := c.Parent().(*ast.SelectorExpr); ok && sel.Sel == id {
			// Selector names are never placeholders.
			return true
		}

		sub, ok := subs[id.Name]
		if !ok {
			return true
		}
		c.Replace(sub)
		return false
	}, nil)

	res, ok := out.(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("call template %q did not produce an expression", text)
	}

	return res, nil
}

var posType = reflect.TypeOf(token.NoPos)

// ScrubPositions zeroes every token.Pos field reachable from node.
// Nodes moved into generated expressions must not keep offsets of the
// file they came from: the printer would try to reproduce the original
// line layout around them.
func ScrubPositions(node ast.Node) {
	ast.Inspect(node, func(n ast.Node) bool {
		if n == nil {
			return false
		}

		v := reflect.ValueOf(n).Elem()
		if v.Kind() != reflect.Struct {
			return true
		}
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.Type() == posType {
				f.SetInt(int64(token.NoPos))
			}
		}
		return true
	})
}
