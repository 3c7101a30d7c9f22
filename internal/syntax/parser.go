package syntax

import (
	"context"
	"errors"
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is wrapped by every parse failure caused by the source itself.
var ErrSyntax = errors.New("syntax error")

// Error reports where the grammar first failed to match the source.
type Error struct {
	Line   int // 0-based
	Column int // 0-based
}

func (e *Error) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line+1, e.Column+1)
}

// Unwrap lets errors.Is(err, ErrSyntax) match.
func (e *Error) Unwrap() error {
	return ErrSyntax
}

// Parser builds Trees from source text using the tree-sitter Python grammar.
// A Parser holds no state and is safe for concurrent use; each call gets its
// own tree-sitter parser.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses src into a Tree.
// Source that does not fully match the grammar yields an *Error.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	st, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer st.Close()

	root := st.RootNode()
	if root.HasError() {
		return nil, errorAt(firstError(root))
	}

	b := &builder{src: src}
	b.walk(root, -1)
	return &Tree{Functions: b.functions}, nil
}

// builder collects functions while walking the concrete syntax tree.
type builder struct {
	src       []byte
	functions []Function
}

// walk visits n; owner is the index of the innermost enclosing function
// whose locals are being collected, or -1.
func (b *builder) walk(n *sitter.Node, owner int) {
	switch n.Type() {
	case "function_definition":
		b.function(n)
		return
	case "class_definition":
		// Class attributes are not function locals, but methods still are functions.
		owner = -1
	case "assignment":
		if owner >= 0 {
			b.assignment(n, owner)
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		b.walk(n.NamedChild(i), owner)
	}
}

func (b *builder) function(n *sitter.Node) {
	fn := Function{Line: line(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = name.Content(b.src)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		fn.Params = b.params(params)
	}

	b.functions = append(b.functions, fn)
	idx := len(b.functions) - 1

	if body := n.ChildByFieldName("body"); body != nil {
		b.walk(body, idx)
	}
}

func (b *builder) params(n *sitter.Node) []Param {
	var params []Param
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)

		var name, value *sitter.Node
		switch child.Type() {
		case "identifier":
			name = child
		case "default_parameter", "typed_default_parameter":
			name = child.ChildByFieldName("name")
			value = child.ChildByFieldName("value")
		case "typed_parameter":
			// The typed_parameter node has no name field; the first named
			// child is the identifier or splat pattern.
			if child.NamedChildCount() > 0 {
				name = splatName(child.NamedChild(0))
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			name = splatName(child)
		}

		if name == nil || name.Type() != "identifier" {
			continue
		}

		param := Param{Name: name.Content(b.src), Line: line(name)}
		if value != nil {
			param.Default = &Default{Kind: valueKind(value), Text: value.Content(b.src)}
		}
		params = append(params, param)
	}
	return params
}

func (b *builder) assignment(n *sitter.Node, owner int) {
	left := n.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return
	}
	b.functions[owner].Assignments = append(b.functions[owner].Assignments, Assignment{
		Name: left.Content(b.src),
		Line: line(left),
	})
}

// splatName unwraps *args / **kwargs to the identifier node.
func splatName(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case "list_splat_pattern", "dictionary_splat_pattern":
		if n.NamedChildCount() == 0 {
			return nil
		}
		return n.NamedChild(0)
	default:
		return n
	}
}

func valueKind(n *sitter.Node) ValueKind {
	switch n.Type() {
	case "list":
		return ValueList
	case "dictionary":
		return ValueDict
	case "set":
		return ValueSet
	default:
		return ValueOther
	}
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return n
}

func errorAt(n *sitter.Node) *Error {
	p := n.StartPoint()
	return &Error{Line: toInt(p.Row), Column: toInt(p.Column)}
}

func line(n *sitter.Node) int {
	return toInt(n.StartPoint().Row)
}

func toInt(v uint32) int {
	i, err := safecast.Conv[int](v)
	if err != nil {
		return 0
	}
	return i
}
