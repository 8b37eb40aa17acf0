// Package emit builds the output expressions a logging label turns into.
// Renderers are pure with respect to the tree: they produce new nodes and
// never mutate the label they were derived from.
package emit

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/sirkon/tracelabel/internal/site"
)

// Renderer maps a logging payload plus its call-site metadata to an
// output-producing expression. Failures of textual call templates are
// surfaced here, lazily, at first use.
type Renderer func(msg Message, meta site.Metadata) (ast.Expr, error)

// Message carries the payload and every metadata field pre-rendered as a
// literal node, ready to be embedded into output expressions.
type Message struct {
	// Prefix is the display prefix: context, a colon, then two spaces
	// per indent level.
	Prefix *ast.BasicLit

	// Content is the payload expression taken from the label body.
	Content ast.Expr

	Context    *ast.BasicLit
	ParentName *ast.BasicLit
	Indent     *ast.BasicLit
	Filename   *ast.BasicLit
	Dirname    *ast.BasicLit
	Basename   *ast.BasicLit
	Extname    *ast.BasicLit

	HasStartMessage *ast.Ident
	IsStartMessage  *ast.Ident
}

// NewMessage renders metadata into a Message around the given payload.
func NewMessage(meta site.Metadata, content ast.Expr) Message {
	return Message{
		Prefix:          strLit(DisplayPrefix(meta)),
		Content:         content,
		Context:         strLit(meta.Context),
		ParentName:      strLit(meta.ParentName),
		Indent:          intLit(meta.Indent),
		Filename:        strLit(meta.Filename),
		Dirname:         strLit(meta.Dirname),
		Basename:        strLit(meta.Basename),
		Extname:         strLit(meta.Extname),
		HasStartMessage: boolIdent(meta.HasStartMessage),
		IsStartMessage:  boolIdent(meta.IsStartMessage),
	}
}

// DisplayPrefix formats the human-facing prefix of an emission call.
func DisplayPrefix(meta site.Metadata) string {
	return meta.Context + ":" + strings.Repeat("  ", meta.Indent)
}

// Bindings exposes the message fields under the placeholder names
// available to call templates.
func (m Message) Bindings() map[string]ast.Expr {
	return map[string]ast.Expr{
		"PAYLOAD":  m.Content,
		"PREFIX":   m.Prefix,
		"CONTEXT":  m.Context,
		"PARENT":   m.ParentName,
		"INDENT":   m.Indent,
		"FILENAME": m.Filename,
		"DIRNAME":  m.Dirname,
		"BASENAME": m.Basename,
		"EXTNAME":  m.Extname,
		"HASSTART": m.HasStartMessage,
		"ISSTART":  m.IsStartMessage,
	}
}

// SpreadParts recognizes the spread payload form: a call to the
// predeclared print or println identifier. Its untouched argument list is
// the ordered sequence of payload values.
func SpreadParts(expr ast.Expr) ([]ast.Expr, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok {
		return nil, false
	}

	fn, ok := call.Fun.(*ast.Ident)
	if !ok {
		return nil, false
	}
	if fn.Name != "print" && fn.Name != "println" {
		return nil, false
	}

	return call.Args, true
}

func strLit(s string) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(s)}
}

func intLit(n int) *ast.BasicLit {
	return &ast.BasicLit{Kind: token.INT, Value: strconv.Itoa(n)}
}

func boolIdent(v bool) *ast.Ident {
	if v {
		return ast.NewIdent("true")
	}
	return ast.NewIdent("false")
}
