package emit

import (
	"strings"
	"testing"

	"github.com/sirkon/tracelabel/internal/site"
)

func TestInstantiate(t *testing.T) {
	meta := site.Metadata{
		Context:    "models:open",
		ParentName: "open",
		Indent:     1,
	}
	msg := NewMessage(meta, payload(t, `record`))

	expr, err := Instantiate(`fmt.Println(PREFIX, CONTEXT, PAYLOAD)`, msg.Bindings())
	if err != nil {
		t.Fatalf("instantiate: %s", err)
	}

	const expected = `fmt.Println("models:open:  ", "models:open", record)`
	if got := printExpr(t, expr); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestInstantiateBooleanPlaceholders(t *testing.T) {
	meta := site.Metadata{Context: "app:run", HasStartMessage: true}
	msg := NewMessage(meta, payload(t, `"x"`))

	expr, err := Instantiate(`report(HASSTART, ISSTART)`, msg.Bindings())
	if err != nil {
		t.Fatalf("instantiate: %s", err)
	}

	const expected = `report(true, false)`
	if got := printExpr(t, expr); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestInstantiateSelectorNamesAreNotPlaceholders(t *testing.T) {
	meta := site.Metadata{Context: "app:run"}
	msg := NewMessage(meta, payload(t, `"x"`))

	expr, err := Instantiate(`sink.PAYLOAD(PAYLOAD)`, msg.Bindings())
	if err != nil {
		t.Fatalf("instantiate: %s", err)
	}

	const expected = `sink.PAYLOAD("x")`
	if got := printExpr(t, expr); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestInstantiateMalformedTemplate(t *testing.T) {
	_, err := Instantiate(`((`, nil)
	if err == nil {
		t.Fatal("expected a parse failure")
	}
	if !strings.Contains(err.Error(), "parse call template") {
		t.Errorf("unexpected error text: %s", err)
	}
}
