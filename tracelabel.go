package tracelabel

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"

	"github.com/sirkon/tracelabel/internal/envopt"
	"github.com/sirkon/tracelabel/internal/rewrite"
)

// Process rewrites every logging label of the file in place. Labels
// unknown to the alias table stay untouched, known ones are either
// deleted per the strip policy or replaced with emission calls, with the
// label wrapper unwrapped into its parent.
//
// A side-effecting label body aborts the file with a position-annotated
// error; earlier labels of the same file are not rolled back.
func Process(fset *token.FileSet, file *ast.File, cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	r := rewrite.New(fset, table, cfg.Strip, cfg.Environment(), envopt.FromEnv(), nil)
	return r.File(file)
}

// ProcessSource is a convenience wrapper: parse, process, print.
// The filename should be resolved to an absolute path by the caller, it
// feeds the context prefix derivation.
func ProcessSource(filename string, src []byte, cfg *Config) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	if err := Process(fset, file, cfg); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("print %s: %w", filename, err)
	}

	return buf.Bytes(), nil
}
