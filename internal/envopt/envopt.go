// Package envopt reads the process-level override lists that can keep
// logging labels alive when a strip policy would otherwise delete them.
package envopt

import (
	"os"
	"strings"
	"sync"
)

// Names of the environment variables consulted by [FromEnv].
const (
	EnvContexts = "TRACE_CONTEXT"
	EnvFiles    = "TRACE_FILE"
	EnvLevels   = "TRACE_LEVEL"
)

// Set is a collection of lower-cased non-empty tokens.
type Set map[string]struct{}

// Has reports whether the exact token is present.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// HasSubstringOf reports whether any token of the set occurs in text.
// The text must already be lower-cased by the caller.
func (s Set) HasSubstringOf(text string) bool {
	for token := range s {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// Overrides holds the three preserve lists. Each entry can only prevent
// stripping, never force it.
type Overrides struct {
	Contexts Set
	Files    Set
	Levels   Set
}

// Parse builds override sets out of three raw comma-separated lists.
// Tokens are trimmed and lower-cased, empty ones are dropped. Missing
// input yields an empty set.
func Parse(contexts, files, levels string) Overrides {
	return Overrides{
		Contexts: splitList(contexts),
		Files:    splitList(files),
		Levels:   splitList(levels),
	}
}

// FromEnv reads TRACE_CONTEXT, TRACE_FILE and TRACE_LEVEL. The result is
// computed once per process and reused for the whole build.
var FromEnv = sync.OnceValue(func() Overrides {
	return Parse(
		os.Getenv(EnvContexts),
		os.Getenv(EnvFiles),
		os.Getenv(EnvLevels),
	)
})

func splitList(raw string) Set {
	set := Set{}
	for _, chunk := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(chunk))
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}
