// Package site computes the logging context of a labeled statement: the
// file-derived prefix, the enclosing function path, the nesting depth and
// the start-message flags.
package site

import "go/ast"

// Metadata describes a single label call site. It is computed fresh per
// label and never cached across labels, since the ancestry differs.
type Metadata struct {
	// Filename is the resolved path of the file owning the label.
	Filename string
	Dirname  string
	Basename string
	Extname  string

	// Prefix is the file-derived module name, see prefix promotion
	// rules in Collect.
	Prefix string

	// ParentName is the colon-joined path of enclosing function names.
	// Empty when the label sits at file scope.
	ParentName string

	// Context is Prefix + ":" + ParentName.
	Context string

	// Indent counts control-flow blocks between the label and its
	// nearest enclosing function.
	Indent int

	// HasStartMessage tells whether the enclosing scope opens with an
	// unbroken run of logging labels. IsStartMessage additionally marks
	// the first label of that run.
	HasStartMessage bool
	IsStartMessage  bool
}

// Aliases is the part of the alias table the collector needs: label names
// it recognizes as logging labels.
type Aliases interface {
	Has(name string) bool
}

// Handled reports statements already rewritten by the engine within the
// current pass. Rewritten statements are no longer labeled, yet they must
// still count as part of a leading logging run.
type Handled interface {
	Has(stmt ast.Stmt) bool
}
