package site

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"
)

// Collect computes the metadata of the labeled statement sitting at the
// top of stack. The stack lists ancestors outermost first, the labeled
// statement itself last, the way inspector.WithStack and astutil visitors
// hand them out.
func Collect(fset *token.FileSet, stack []ast.Node, aliases Aliases, handled Handled) Metadata {
	label := stack[len(stack)-1].(*ast.LabeledStmt)

	var meta Metadata
	meta.Filename = fset.Position(label.Pos()).Filename
	meta.Dirname = filepath.Dir(meta.Filename)
	meta.Extname = filepath.Ext(meta.Filename)
	meta.Basename = strings.TrimSuffix(filepath.Base(meta.Filename), meta.Extname)
	meta.Prefix = prefixOf(meta.Dirname, meta.Basename)

	w := walkScopes(fset, stack[:len(stack)-1])
	meta.Indent = w.indent
	meta.ParentName = strings.Join(w.names, ":")
	meta.Context = meta.Prefix + ":" + meta.ParentName

	meta.HasStartMessage, meta.IsStartMessage = startMessage(w.parent, label, aliases, handled)

	return meta
}

// scopeWalk is the accumulator of the ancestry fold. Once parent is set,
// indent counting stops while name collection continues outward.
type scopeWalk struct {
	parent ast.Node
	indent int
	names  []string
}

func walkScopes(fset *token.FileSet, ancestors []ast.Node) scopeWalk {
	var w scopeWalk

	for i := len(ancestors) - 1; i >= 0; i-- {
		switch n := ancestors[i].(type) {
		case *ast.FuncDecl:
			if recv := recvTypeName(n); recv != "" {
				w.names = append([]string{recv, n.Name.Name}, w.names...)
			} else {
				w.names = append([]string{n.Name.Name}, w.names...)
			}
			if w.parent == nil {
				w.parent = n
			}

		case *ast.FuncLit:
			name := fmt.Sprintf("[anonymous@%d]", fset.Position(n.Pos()).Line)
			w.names = append([]string{name}, w.names...)
			if w.parent == nil {
				w.parent = n
			}

		case *ast.File:
			// Program root: fixes the scope, contributes no name.
			if w.parent == nil {
				w.parent = n
			}

		case *ast.BlockStmt, *ast.LabeledStmt:
			// Block and label wrappers do not count as nesting.

		default:
			if w.parent == nil {
				w.indent++
			}
		}
	}

	return w
}

// recvTypeName extracts the receiver type name of a method declaration,
// or "" for a plain function.
func recvTypeName(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return ""
	}

	expr := decl.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// prefixOf derives the context prefix from the file location. Index files
// report the owning module's name rather than the literal "index": the
// prefix climbs to the parent directory, and once more past src/lib.
func prefixOf(dirname, basename string) string {
	if basename != "index" {
		return basename
	}

	parent := filepath.Base(dirname)
	if parent != "src" && parent != "lib" {
		return parent
	}

	return filepath.Base(filepath.Dir(dirname))
}

// startMessage scans the leading statements of the enclosing scope body.
// A contiguous run of logging labels (or statements already rewritten from
// them) at the very top of the body forms the "start message" group.
func startMessage(parent ast.Node, label *ast.LabeledStmt, aliases Aliases, handled Handled) (has, is bool) {
	var body []ast.Stmt
	switch p := parent.(type) {
	case *ast.FuncDecl:
		if p.Body == nil {
			return false, false
		}
		body = p.Body.List
	case *ast.FuncLit:
		body = p.Body.List
	default:
		// File scope or no scope at all: no start message.
		return false, false
	}

	for _, child := range body {
		if handled != nil && handled.Has(child) {
			return true, false
		}

		lbl, ok := child.(*ast.LabeledStmt)
		if !ok {
			return false, false
		}
		if !aliases.Has(lbl.Label.Name) {
			// Foreign label (break/continue target), keep scanning.
			continue
		}

		return true, lbl == label
	}

	return false, false
}
