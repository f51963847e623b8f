// Package parser builds syntax trees for a subset of SystemVerilog.
//
// # Usage
//
//	res, err := parser.Parse(src, "foo_pkg.sv")
//	if err != nil {
//	    // *parser.SyntaxError, errors.Is(err, parser.ErrSyntax)
//	}
//	if res.Tree == nil {
//	    // empty source
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser without error recovery: the first
// error ends the parse.
//
//	source      → item*
//	item        → module | package | class | function | param_decl ';'
//	            | data_decl | 'assign' ... | 'initial' stmt | directive
//	module      → 'module' id [param_ports] [ports] ';' item* 'endmodule' [':' id]
//	package     → 'package' id ';' item* 'endpackage' [':' id]
//	class       → ['virtual'] 'class' id [param_ports] ['extends' type] ';' item* 'endclass' [':' id]
//	function    → ['virtual'|'static'] 'function' [lifetime] [type] id [ports] ';' stmt* 'endfunction' [':' id]
//	directive   → '`include' string | '`define' id [body] | '`ifdef' id | '`ifndef' id
//	            | '`else' | '`endif' | '`undef' id
//
// Preprocessor directives are kept in the tree at item and statement
// positions; conditionals are not evaluated.
//
// See each file for detailed grammar rules for that section.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Result is a successful parse.
type Result struct {
	// Tree is nil when the source holds no tokens.
	Tree syntax.Symbol
	// Diagnostics holds non-fatal findings.
	Diagnostics []Diagnostic
}

// Parse parses source. filename is used in diagnostics only.
func Parse(source, filename string) (*Result, error) {
	p := NewParser(source)
	tree, err := p.parse()
	if err != nil {
		return nil, &SyntaxError{Filename: filename, Diagnostics: p.errors}
	}
	return &Result{Tree: tree, Diagnostics: p.warnings}, nil
}

// Parser parses a token stream into a syntax tree.
type Parser struct {
	toks     []token.Token
	pos      int
	token    token.Token // current token
	errors   []Diagnostic
	warnings []Diagnostic
}

// bailout unwinds the parser after the first error.
type bailout struct{}

// NewParser creates a parser for source.
func NewParser(source string) *Parser {
	p := &Parser{toks: NewLexer(source).Tokenize()}
	p.token = p.toks[0]
	return p
}

func (p *Parser) parse() (tree syntax.Symbol, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			tree, err = nil, ErrSyntax
		}
	}()

	for _, tok := range p.toks {
		if tok.Kind != token.ILLEGAL {
			continue
		}
		msg := fmt.Sprintf(errInvalidToken, tok.Text)
		switch {
		case strings.HasPrefix(tok.Text, `"`):
			msg = errUnterminatedString
		case strings.HasPrefix(tok.Text, "/*"):
			msg = errUnterminatedComment
		}
		p.errors = append(p.errors, Diagnostic{Pos: tok.Pos, Message: msg})
	}
	if len(p.errors) > 0 {
		return nil, ErrSyntax
	}
	if p.check(token.EOF) {
		return nil, nil
	}
	items := p.parseItems(token.EOF)
	return syntax.NewNode(cst.DescriptionList, items...), nil
}

// ---------- Token Helpers ----------

func (p *Parser) nextToken() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.token = p.toks[p.pos]
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) check(k token.Kind) bool {
	return p.token.Kind == k
}

// leaf consumes the current token and returns it as a leaf.
func (p *Parser) leaf() *syntax.Leaf {
	l := syntax.NewLeaf(p.token)
	p.nextToken()
	return l
}

// accept consumes the current token if it has kind k. The result is a nil
// Symbol otherwise, so it can be used directly as an optional child.
func (p *Parser) accept(k token.Kind) syntax.Symbol {
	if p.check(k) {
		return p.leaf()
	}
	return nil
}

// expect consumes a token of kind k or fails.
func (p *Parser) expect(k token.Kind) *syntax.Leaf {
	if !p.check(k) {
		p.fail(errUnexpectedToken, p.token.Kind, p.token.Text, k)
	}
	return p.leaf()
}

// fail records a fatal error at the current token and unwinds.
func (p *Parser) fail(format string, args ...any) {
	p.errors = append(p.errors, Diagnostic{Pos: p.token.Pos, Message: fmt.Sprintf(format, args...)})
	panic(bailout{})
}

func (p *Parser) warn(pos token.Position, format string, args ...any) {
	p.warnings = append(p.warnings, Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

// opt converts a possibly nil node to a Symbol without creating a typed nil.
func opt(n *syntax.Node) syntax.Symbol {
	if n == nil {
		return nil
	}
	return n
}
