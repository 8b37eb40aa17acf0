package labels

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/tracelabel/internal/emit"
	"github.com/sirkon/tracelabel/internal/site"
)

func render(t *testing.T, table *Table, name, payloadSrc string, meta site.Metadata) string {
	t.Helper()

	renderer, ok := table.Renderer(name)
	if !ok {
		t.Fatalf("no renderer for %q", name)
	}

	content, err := parser.ParseExpr(payloadSrc)
	if err != nil {
		t.Fatalf("parse payload: %s", err)
	}
	emit.ScrubPositions(content)

	expr, err := renderer(emit.NewMessage(meta, content), meta)
	if err != nil {
		t.Fatalf("render: %s", err)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, token.NewFileSet(), expr); err != nil {
		t.Fatalf("print: %s", err)
	}
	return buf.String()
}

func TestDefaults(t *testing.T) {
	table := Defaults()

	for _, name := range []string{"log", "trace", "warn"} {
		if !table.Has(name) {
			t.Errorf("defaults must contain %q", name)
		}
	}
	if table.Has("debug") {
		t.Error("defaults must not contain debug")
	}

	meta := site.Metadata{Context: "app:run"}

	// trace and log share the log-level renderer.
	if got := render(t, table, "trace", `"x"`, meta); got != `tracelog.Log("app:run:", "x")` {
		t.Errorf("trace renders to %s", got)
	}
	if got := render(t, table, "log", `"x"`, meta); got != `tracelog.Log("app:run:", "x")` {
		t.Errorf("log renders to %s", got)
	}
	if got := render(t, table, "warn", `"x"`, meta); got != `tracelog.Warn("app:run:", "x")` {
		t.Errorf("warn renders to %s", got)
	}

	if table.Import("trace") != emit.SinkImport {
		t.Errorf("unexpected import %q", table.Import("trace"))
	}
}

func TestNormalize(t *testing.T) {
	t.Run("no aliases fall back to defaults", func(t *testing.T) {
		table, err := Normalize(nil)
		if err != nil {
			t.Fatal(err)
		}
		if !table.Has("trace") || !table.Has("warn") {
			t.Error("expected the default table")
		}
	})

	t.Run("explicit aliases replace defaults entirely", func(t *testing.T) {
		table, err := Normalize(map[string]Alias{
			"debug": {Template: `fmt.Println(PREFIX, PAYLOAD)`, Import: "fmt"},
		})
		if err != nil {
			t.Fatal(err)
		}

		if table.Has("trace") {
			t.Error("defaults must not leak into an explicit table")
		}

		meta := site.Metadata{Context: "app:run"}
		if got := render(t, table, "debug", `"x"`, meta); got != `fmt.Println("app:run:", "x")` {
			t.Errorf("debug renders to %s", got)
		}
		if table.Import("debug") != "fmt" {
			t.Errorf("unexpected import %q", table.Import("debug"))
		}
	})

	t.Run("empty alias is rejected", func(t *testing.T) {
		_, err := Normalize(map[string]Alias{"broken": {}})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), `alias "broken"`) {
			t.Errorf("unexpected error text: %s", err)
		}
	})

	t.Run("malformed template surfaces at first use", func(t *testing.T) {
		table, err := Normalize(map[string]Alias{"bad": {Template: `((`}})
		if err != nil {
			t.Fatalf("normalization must not parse templates: %s", err)
		}

		renderer, _ := table.Renderer("bad")
		content, _ := parser.ParseExpr(`"x"`)
		_, err = renderer(emit.NewMessage(site.Metadata{}, content), site.Metadata{})
		if err == nil {
			t.Fatal("expected a lazy template failure")
		}
	})
}

func TestDerive(t *testing.T) {
	aliases := Derive([]string{"trace", "alert"}, []string{"alert"})

	table, err := Normalize(aliases)
	if err != nil {
		t.Fatal(err)
	}

	meta := site.Metadata{Context: "app:run"}
	if got := render(t, table, "trace", `"x"`, meta); got != `tracelog.Log("app:run:", "x")` {
		t.Errorf("trace renders to %s", got)
	}
	if got := render(t, table, "alert", `"x"`, meta); got != `tracelog.Warn("app:run:", "x")` {
		t.Errorf("alert renders to %s", got)
	}
}

func TestAliasUnmarshalYAML(t *testing.T) {
	t.Run("scalar form", func(t *testing.T) {
		var a Alias
		if err := yaml.Unmarshal([]byte(`fmt.Println(PREFIX, PAYLOAD)`), &a); err != nil {
			t.Fatal(err)
		}
		if a.Template != `fmt.Println(PREFIX, PAYLOAD)` || a.Import != "" {
			t.Errorf("unexpected alias %+v", a)
		}
	})

	t.Run("mapping form", func(t *testing.T) {
		var a Alias
		src := "template: fmt.Println(PREFIX, PAYLOAD)\nimport: fmt\n"
		if err := yaml.Unmarshal([]byte(src), &a); err != nil {
			t.Fatal(err)
		}
		if a.Template != `fmt.Println(PREFIX, PAYLOAD)` || a.Import != "fmt" {
			t.Errorf("unexpected alias %+v", a)
		}
	})

	t.Run("sequence is rejected", func(t *testing.T) {
		var a Alias
		if err := yaml.Unmarshal([]byte(`[a, b]`), &a); err == nil {
			t.Fatal("expected an error")
		}
	})
}
