// Package labels resolves user-supplied alias configuration into a uniform
// label-name to renderer table.
package labels

import (
	"fmt"
	"sort"

	"github.com/sirkon/tracelabel/internal/emit"
	"github.com/sirkon/tracelabel/internal/site"
)

// Table maps label names to their renderers. Built once per compilation
// unit, read-only afterwards.
type Table struct {
	entries map[string]entry
}

type entry struct {
	render     emit.Renderer
	importPath string
}

var _ site.Aliases = (*Table)(nil)

// Has reports whether the name is a known logging label.
func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Renderer returns the renderer registered for the label name.
func (t *Table) Renderer(name string) (emit.Renderer, bool) {
	e, ok := t.entries[name]
	return e.render, ok
}

// Import returns the import path the label's output calls rely on.
// Empty for templates that need no extra import.
func (t *Table) Import(name string) string {
	return t.entries[name].importPath
}

// Names lists the registered label names in stable order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults is the table used when no aliases are configured: trace and log
// share the log-level renderer, warn gets its own.
func Defaults() *Table {
	logLevel := entry{render: emit.Level("log"), importPath: emit.SinkImport}
	return &Table{entries: map[string]entry{
		"log":   logLevel,
		"trace": logLevel,
		"warn":  {render: emit.Level("warn"), importPath: emit.SinkImport},
	}}
}

// Normalize resolves explicit aliases into a table. A nil or empty alias
// map yields [Defaults]. Callers are expected to normalize a configuration
// only once and reuse the table across files.
func Normalize(aliases map[string]Alias) (*Table, error) {
	if len(aliases) == 0 {
		return Defaults(), nil
	}

	entries := make(map[string]entry, len(aliases))
	for name, alias := range aliases {
		e, err := alias.compile()
		if err != nil {
			return nil, fmt.Errorf("alias %q: %w", name, err)
		}
		entries[name] = e
	}

	return &Table{entries: entries}, nil
}

// Derive builds an alias set out of a plain name list: names from
// warningLabels route to the warn level, the rest to log.
func Derive(names, warningLabels []string) map[string]Alias {
	warning := make(map[string]struct{}, len(warningLabels))
	for _, name := range warningLabels {
		warning[name] = struct{}{}
	}

	aliases := make(map[string]Alias, len(names))
	for _, name := range names {
		level := "log"
		if _, ok := warning[name]; ok {
			level = "warn"
		}
		aliases[name] = Alias{Func: emit.Level(level), Import: emit.SinkImport}
	}

	return aliases
}
