package tracelabel

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/tracelabel/internal/labels"
	"github.com/sirkon/tracelabel/internal/rewrite"
	"github.com/sirkon/tracelabel/internal/site"
)

const doc = `tracelabel checks logging labels (trace:, log:, warn:) for side-effecting bodies`

// Analyzer is the lint-only entry point: it reports label bodies the
// rewriter would reject, without mutating anything. With -contexts it
// also reports the computed context of every logging label.
var Analyzer = &analysis.Analyzer{
	Name:     "tracelabel",
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runAnalyzer,
}

var reportContexts bool

func init() {
	Analyzer.Flags.BoolVar(&reportContexts, "contexts", false, "report the computed context of every logging label")
}

func runAnalyzer(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	table := labels.Defaults()

	nodeFilter := []ast.Node{
		(*ast.LabeledStmt)(nil),
	}

	pector.WithStack(nodeFilter, func(node ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}

		lbl := node.(*ast.LabeledStmt) // No need to assert check since we only get labeled statements.
		if !table.Has(lbl.Label.Name) {
			return true
		}

		if bad := rewrite.FindSideEffect(lbl.Stmt); bad != nil {
			pass.Reportf(bad.Pos(), "%s", rewrite.SideEffectMessage)
		}

		if reportContexts {
			meta := site.Collect(pass.Fset, stack, table, nil)
			pass.Reportf(lbl.Pos(), "label %s context %s", lbl.Label.Name, meta.Context)
		}

		return true
	})

	return nil, nil
}
