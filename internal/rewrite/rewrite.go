// Package rewrite walks a file, recognizes logging labels and either
// deletes them or replaces them with emission calls. The label wrapper
// itself never survives to the output tree.
package rewrite

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/sirkon/tracelabel/internal/emit"
	"github.com/sirkon/tracelabel/internal/envopt"
	"github.com/sirkon/tracelabel/internal/labels"
	"github.com/sirkon/tracelabel/internal/site"
	"github.com/sirkon/tracelabel/internal/strip"
)

// Rewriter transforms one file at a time. The alias table and override
// sets it holds are read-only, so distinct Rewriters may share them
// across goroutines.
type Rewriter struct {
	fset      *token.FileSet
	table     *labels.Table
	strip     strip.Config
	env       string
	overrides envopt.Overrides
	decisions *DecisionLog

	// Pass-scoped state, reset by File.
	handled stmtSet
	imports map[string]struct{}
	err     error
}

// New builds a rewriter. The decision log may be nil when no summary is
// wanted.
func New(
	fset *token.FileSet,
	table *labels.Table,
	stripCfg strip.Config,
	env string,
	overrides envopt.Overrides,
	decisions *DecisionLog,
) *Rewriter {
	return &Rewriter{
		fset:      fset,
		table:     table,
		strip:     stripCfg,
		env:       env,
		overrides: overrides,
		decisions: decisions,
	}
}

// File rewrites every logging label of the file in place. The first
// validation failure aborts the file; earlier rewrites are not rolled
// back.
func (r *Rewriter) File(file *ast.File) error {
	r.handled = stmtSet{}
	r.imports = map[string]struct{}{}
	r.err = nil

	var stack []ast.Node

	// Labels are processed at post-order so that labels nested inside a
	// label body are rewritten before the outer body is spliced.
	astutil.Apply(file, func(c *astutil.Cursor) bool {
		if r.err != nil {
			return false
		}
		stack = append(stack, c.Node())
		return true
	}, func(c *astutil.Cursor) bool {
		if r.err == nil {
			if lbl, ok := c.Node().(*ast.LabeledStmt); ok {
				r.label(c, lbl, stack)
			}
		}
		stack = stack[:len(stack)-1]
		return true
	})

	if r.err != nil {
		return r.err
	}

	paths := make([]string, 0, len(r.imports))
	for path := range r.imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		astutil.AddImport(r.fset, file, path)
	}

	return nil
}

func (r *Rewriter) label(c *astutil.Cursor, lbl *ast.LabeledStmt, stack []ast.Node) {
	name := lbl.Label.Name
	if !r.table.Has(name) {
		// Ordinary break/continue target, leave untouched.
		return
	}

	meta := site.Collect(r.fset, stack, r.table, r.handled)

	if strip.ShouldStrip(name, meta, r.strip, r.env, r.overrides) {
		r.splice(c, nil)
		r.record(Decision{
			Action:  ActionStripped,
			Label:   name,
			Context: meta.Context,
			Pos:     r.fset.Position(lbl.Pos()),
		})
		return
	}

	if err := validateBody(r.fset, lbl.Stmt); err != nil {
		r.err = err
		return
	}

	render, _ := r.table.Renderer(name)
	out, rendered, err := r.rewriteBody(lbl, render, meta)
	if err != nil {
		r.err = fmt.Errorf("%s: label %s: %w", r.fset.Position(lbl.Pos()), name, err)
		return
	}

	r.splice(c, out)

	if rendered > 0 {
		if path := r.table.Import(name); path != "" {
			r.imports[path] = struct{}{}
		}
	}
	r.record(Decision{
		Action:   ActionRewritten,
		Label:    name,
		Context:  meta.Context,
		Messages: rendered,
		Pos:      r.fset.Position(lbl.Pos()),
	})
}

// rewriteBody renders every direct expression-statement child of the
// label body, passing other statements through untouched.
func (r *Rewriter) rewriteBody(lbl *ast.LabeledStmt, render emit.Renderer, meta site.Metadata) ([]ast.Stmt, int, error) {
	var stmts []ast.Stmt
	switch b := lbl.Stmt.(type) {
	case *ast.BlockStmt:
		stmts = b.List
	case *ast.EmptyStmt:
		return nil, 0, nil
	default:
		stmts = []ast.Stmt{lbl.Stmt}
	}

	out := make([]ast.Stmt, 0, len(stmts))
	var rendered int
	for _, s := range stmts {
		es, ok := s.(*ast.ExprStmt)
		if !ok || r.handled.Has(s) {
			out = append(out, s)
			continue
		}

		// The payload moves into a freshly built expression, its old
		// offsets must not dictate the output layout.
		emit.ScrubPositions(es.X)

		call, err := render(emit.NewMessage(meta, es.X), meta)
		if err != nil {
			return nil, 0, err
		}

		ns := &ast.ExprStmt{X: call}
		r.handled.add(ns)
		out = append(out, ns)
		rendered++
	}

	return out, rendered, nil
}

// splice substitutes the labeled statement with the given statements.
// A label wrapping another label sits in a single-node field rather than
// a statement slice, hence the empty-statement and block fallbacks.
func (r *Rewriter) splice(c *astutil.Cursor, out []ast.Stmt) {
	inSlice := c.Index() >= 0

	switch {
	case len(out) == 0:
		if inSlice {
			c.Delete()
		} else {
			c.Replace(&ast.EmptyStmt{Implicit: true})
		}

	case len(out) == 1:
		c.Replace(out[0])

	case inSlice:
		for _, s := range out {
			c.InsertBefore(s)
		}
		c.Delete()

	default:
		c.Replace(&ast.BlockStmt{List: out})
	}
}

func (r *Rewriter) record(d Decision) {
	if r.decisions == nil {
		return
	}
	r.decisions.Add(d)
}

// stmtSet is the pass-scoped identity set of statements already produced
// by the engine. It replaces per-node tags so nothing leaks across runs.
type stmtSet map[ast.Stmt]struct{}

var _ site.Handled = stmtSet(nil)

func (s stmtSet) Has(stmt ast.Stmt) bool {
	_, ok := s[stmt]
	return ok
}

func (s stmtSet) add(stmt ast.Stmt) {
	s[stmt] = struct{}{}
}
