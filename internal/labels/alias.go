package labels

import (
	"errors"
	"fmt"
	"go/ast"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/tracelabel/internal/emit"
	"github.com/sirkon/tracelabel/internal/site"
)

// Alias is one configured label. Configuration files supply either a bare
// call template text or a mapping with template and import; programmatic
// callers may install a renderer function directly.
type Alias struct {
	// Template is a call-expression text with placeholder identifiers,
	// e.g. `fmt.Println(PREFIX, PAYLOAD)`.
	Template string `yaml:"template"`

	// Import is added to files where this alias fired.
	Import string `yaml:"import"`

	// Func overrides Template. Not settable from configuration files.
	Func emit.Renderer `yaml:"-"`
}

var _ yaml.Unmarshaler = (*Alias)(nil)

// UnmarshalYAML accepts both forms:
//
//	debug: fmt.Println(PREFIX, PAYLOAD)
//	debug: {template: fmt.Println(PREFIX, PAYLOAD), import: fmt}
func (a *Alias) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		a.Template = value.Value
		return nil

	case yaml.MappingNode:
		type plain struct {
			Template string `yaml:"template"`
			Import   string `yaml:"import"`
		}
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		a.Template = p.Template
		a.Import = p.Import
		return nil

	default:
		return fmt.Errorf("alias must be a template string or a mapping, got %s", value.Tag)
	}
}

// compile resolves the alias into a uniform renderer entry. Template
// texts are not parsed here: a malformed template surfaces at first use.
func (a Alias) compile() (entry, error) {
	if a.Func != nil {
		return entry{render: a.Func, importPath: a.Import}, nil
	}

	if a.Template == "" {
		return entry{}, errors.New("neither template nor renderer function is set")
	}

	text := a.Template
	render := func(msg emit.Message, meta site.Metadata) (ast.Expr, error) {
		return emit.Instantiate(text, msg.Bindings())
	}

	return entry{render: render, importPath: a.Import}, nil
}
