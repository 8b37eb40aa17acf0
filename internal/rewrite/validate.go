package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
)

// SideEffectMessage is the user-facing text of the static-safety
// rejection. A logging statement with side effects would change program
// behavior when stripped, so the engine refuses to compile it.
const SideEffectMessage = "Logging statements cannot have side effects."

// Error is a fatal, position-annotated rejection of a label body.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// validateBody scans the label body for the denylisted constructs:
// declarations, function literals, assignments, ++/--, channel operations
// and returns. The scan never descends past a nested function literal,
// the literal itself is already rejected.
func validateBody(fset *token.FileSet, body ast.Stmt) error {
	if bad := FindSideEffect(body); bad != nil {
		return &Error{Pos: fset.Position(bad.Pos()), Msg: SideEffectMessage}
	}
	return nil
}

// FindSideEffect returns the first denylisted construct of a label body,
// nil when the body is clean. Exposed for lint-only checks.
func FindSideEffect(body ast.Stmt) ast.Node {
	var bad ast.Node

	ast.Inspect(body, func(n ast.Node) bool {
		if bad != nil {
			return false
		}

		switch x := n.(type) {
		case *ast.DeclStmt, *ast.FuncLit, *ast.AssignStmt, *ast.IncDecStmt, *ast.ReturnStmt, *ast.SendStmt:
			bad = n
			return false

		case *ast.UnaryExpr:
			if x.Op == token.ARROW {
				bad = n
				return false
			}
		}

		return true
	})

	return bad
}
