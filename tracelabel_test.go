package tracelabel

import (
	"embed"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

//go:embed testdata
var rewriteCases embed.FS

func TestProcessSource(t *testing.T) {
	files, err := rewriteCases.ReadDir("testdata/cases")
	if err != nil {
		t.Fatal(fmt.Errorf("list rewrite cases: %w", err))
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := file.Name()
		if !strings.HasPrefix(name, "case_") || !strings.HasSuffix(name, ".go") {
			continue
		}

		t.Run(name, func(t *testing.T) {
			src, err := rewriteCases.ReadFile("testdata/cases/" + name)
			if err != nil {
				t.Fatalf("read case %s: %s", name, err)
			}

			goldenName := strings.TrimSuffix(name, ".go") + ".golden"
			golden, err := rewriteCases.ReadFile("testdata/cases/" + goldenName)
			if err != nil {
				t.Fatalf("no golden found for %s", name)
			}

			got, err := ProcessSource("/work/src/app/"+name, src, &Config{})
			if err != nil {
				t.Fatalf("process %s: %s", name, err)
			}

			// Splicing moves statements around, the exact blank line
			// layout of the output is not under test.
			expectedLines := contentLines(string(golden))
			gotLines := contentLines(string(got))

			if !reflect.DeepEqual(expectedLines, gotLines) {
				deepequal.SideBySide(t, "output lines", expectedLines, gotLines)
			}
		})
	}
}

func contentLines(src string) []string {
	var lines []string
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func TestProcessSourceSideEffect(t *testing.T) {
	src := []byte(`package app

func handle(x int) {
trace:
	x = 1
}
`)

	_, err := ProcessSource("/work/src/app/broken.go", src, &Config{})
	if err == nil {
		t.Fatal("expected a side effect rejection")
	}
	if !strings.Contains(err.Error(), "Logging statements cannot have side effects.") {
		t.Fatalf("unexpected error text: %s", err)
	}
}

func TestProcessSourceCustomAliases(t *testing.T) {
	cfg := &Config{
		Aliases: map[string]Alias{
			"debug": {Template: "fmt.Println(PREFIX, PAYLOAD)", Import: "fmt"},
		},
	}

	src := []byte(`package app

func handle() {
debug:
	"starting"
}
`)

	got, err := ProcessSource("/work/src/app/aliased.go", src, cfg)
	if err != nil {
		t.Fatal(err)
	}

	out := string(got)
	if !strings.Contains(out, `fmt.Println("aliased:handle:", "starting")`) {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "tracelog") {
		t.Error("default sink must not appear under an explicit alias table")
	}
}
