package main

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/sirkon/tracelabel"
	"github.com/sirkon/tracelabel/internal/envopt"
	"github.com/sirkon/tracelabel/internal/rewrite"
)

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && skipDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(path, ".go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}

	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "_") ||
		name == "vendor" ||
		name == "testdata"
}

func transformAll(
	logger hclog.Logger,
	cfg *tracelabel.Config,
	files []string,
	opts *options,
	decisions *rewrite.DecisionLog,
) error {
	if !opts.write && opts.outDir == "" {
		// stdout mode must stay sequential to keep output readable.
		for _, path := range files {
			if err := transformFile(logger, cfg, path, opts, decisions); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range files {
		path := path
		g.Go(func() error {
			return transformFile(logger, cfg, path, opts, decisions)
		})
	}

	return g.Wait()
}

func transformFile(
	logger hclog.Logger,
	cfg *tracelabel.Config,
	path string,
	opts *options,
	decisions *rewrite.DecisionLog,
) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, abs, src, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	rw := rewrite.New(fset, table, cfg.Strip, cfg.Environment(), envopt.FromEnv(), decisions)
	if err := rw.File(file); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return fmt.Errorf("print %s: %w", path, err)
	}

	logger.Debug("transformed", "file", path)

	switch {
	case opts.write:
		return os.WriteFile(path, buf.Bytes(), 0o644)

	case opts.outDir != "":
		dest := filepath.Join(opts.outDir, strings.TrimPrefix(path, string(filepath.Separator)))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("prepare output dir for %s: %w", path, err)
		}
		return os.WriteFile(dest, buf.Bytes(), 0o644)

	default:
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
}
