package strip

import (
	"strings"

	"github.com/sirkon/tracelabel/internal/envopt"
	"github.com/sirkon/tracelabel/internal/site"
)

// ShouldStrip combines the static policy with the environment override
// sets. Overrides are escape hatches: they can only prevent a strip the
// policy asked for, never force one.
func ShouldStrip(label string, meta site.Metadata, cfg Config, env string, ov envopt.Overrides) bool {
	if !cfg.Active(env) {
		return false
	}

	// Tentatively stripping. Check overrides in order: context, file,
	// level.
	if ov.Contexts.HasSubstringOf(strings.ToLower(meta.Context)) {
		return false
	}
	if ov.Files.HasSubstringOf(strings.ToLower(meta.Filename)) {
		return false
	}
	if ov.Levels.Has(strings.ToLower(label)) {
		return false
	}

	return true
}
