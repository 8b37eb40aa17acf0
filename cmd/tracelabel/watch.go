package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/sirkon/tracelabel"
	"github.com/sirkon/tracelabel/internal/rewrite"
)

// watch keeps re-transforming files under the given roots on change
// until the process is interrupted. Transform failures are logged, not
// fatal: a single broken file must not stop the loop.
func watch(
	logger hclog.Logger,
	cfg *tracelabel.Config,
	roots []string,
	opts *options,
	decisions *rewrite.DecisionLog,
) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	for _, root := range roots {
		if err := addTree(w, root); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "paths", roots)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(ev.Name) != ".go" {
				continue
			}
			if strings.HasPrefix(ev.Name, opts.outDir) {
				continue
			}

			if err := transformFile(logger, cfg, ev.Name, opts, decisions); err != nil {
				logger.Error("transform failed", "file", ev.Name, "error", err)
				continue
			}
			logger.Info("re-transformed", "file", ev.Name)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher", "error", err)
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return w.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
