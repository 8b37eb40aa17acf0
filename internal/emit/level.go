package emit

import (
	"fmt"
	"go/ast"
	"unicode"
	"unicode/utf8"

	"github.com/sirkon/tracelabel/internal/site"
)

// Default emission sink targeted by level renderers. The import is added
// to rewritten files by the engine, not here.
const (
	SinkIdent  = "tracelog"
	SinkImport = "github.com/sirkon/tracelabel/tracelog"
)

// Level builds a renderer routing to the level-named sink function.
// It does not validate that the level denotes a function the sink actually
// exports, that is the caller's responsibility via configuration.
func Level(level string) Renderer {
	fn := exportName(level)

	return func(msg Message, meta site.Metadata) (ast.Expr, error) {
		if parts, ok := SpreadParts(msg.Content); ok {
			// N payload values turn into N+1 arguments.
			args := make([]ast.Expr, 0, len(parts)+1)
			args = append(args, msg.Prefix)
			args = append(args, parts...)

			return &ast.CallExpr{
				Fun: &ast.SelectorExpr{
					X:   ast.NewIdent(SinkIdent),
					Sel: ast.NewIdent(fn),
				},
				Args: args,
			}, nil
		}

		return Instantiate(
			fmt.Sprintf("%s.%s(PREFIX, PAYLOAD)", SinkIdent, fn),
			msg.Bindings(),
		)
	}
}

// exportName turns a level name into the exported sink function name,
// "warn" into "Warn".
func exportName(level string) string {
	r, size := utf8.DecodeRuneInString(level)
	if r == utf8.RuneError {
		return level
	}
	return string(unicode.ToUpper(r)) + level[size:]
}
