package parser

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Expression parsing by precedence climbing.
//
// Binary precedence levels, lowest first:
//
//	1  ||
//	2  &&
//	3  |
//	4  ^
//	5  &
//	6  == !=
//	7  < <= > >=
//	8  << >>
//	9  + -
//	10 * / %
//
// The conditional operator ?: binds loosest and is right associative.
//
//	primary     → number | string | reference | call | '(' expr ')'
//	            | '{' expr {',' expr} '}' | "void'(" expr ')' | macro
//	reference   → (id | id '::' id ...) { '.' id | '[' expr [':' expr] ']' | args }

var binaryPrecedence = map[token.Kind]int{
	token.OROR:    1,
	token.ANDAND:  2,
	token.PIPE:    3,
	token.CARET:   4,
	token.AMP:     5,
	token.EQEQ:    6,
	token.NE:      6,
	token.LT:      7,
	token.LE:      7,
	token.GT:      7,
	token.GE:      7,
	token.SHL:     8,
	token.SHR:     8,
	token.PLUS:    9,
	token.MINUS:   9,
	token.STAR:    10,
	token.SLASH:   10,
	token.PERCENT: 10,
}

// parseExpression parses a full expression including ?:.
func (p *Parser) parseExpression() syntax.Symbol {
	cond := p.parseBinary(1)
	if !p.check(token.QUESTION) {
		return cond
	}
	q := p.leaf()
	then := p.parseExpression()
	colon := p.expect(token.COLON)
	return syntax.NewNode(cst.ConditionExpression, cond, q, then, colon, p.parseExpression())
}

func (p *Parser) parseBinary(minPrec int) syntax.Symbol {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.token.Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.leaf()
		right := p.parseBinary(prec + 1)
		left = syntax.NewNode(cst.BinaryExpression, left, op, right)
	}
}

func (p *Parser) parseUnary() syntax.Symbol {
	switch p.token.Kind {
	case token.PLUS, token.MINUS, token.BANG, token.TILDE,
		token.AMP, token.PIPE, token.CARET, token.INC, token.DEC:
		op := p.leaf()
		return syntax.NewNode(cst.UnaryExpression, op, p.parseUnary())
	}
	operand := p.parsePrimary()
	if p.check(token.INC) || p.check(token.DEC) {
		return syntax.NewNode(cst.PostfixExpression, operand, p.leaf())
	}
	return operand
}

func (p *Parser) parsePrimary() syntax.Symbol {
	switch p.token.Kind {
	case token.NUMBER, token.STRING:
		return p.leaf()
	case token.SYSTEM_IDENT:
		id := p.leaf()
		if !p.check(token.LPAREN) {
			return id
		}
		return syntax.NewNode(cst.FunctionCall, id, p.parseArgumentList())
	case token.MACRO_IDENT:
		return p.parseMacroCall()
	case token.LPAREN:
		lp := p.leaf()
		inner := p.parseExpression()
		return syntax.NewNode(cst.ParenGroup, lp, inner, p.expect(token.RPAREN))
	case token.LBRACE:
		return p.parseConcatenation()
	case token.VOID:
		if p.peek(1).Kind == token.APOSTROPHE {
			return p.parseVoidCast()
		}
	case token.IDENT:
		return p.parseReference()
	}
	p.fail("unexpected %s %q in expression", p.token.Kind, p.token.Text)
	return nil
}

// parseVoidCast parses void'( expr ).
func (p *Parser) parseVoidCast() *syntax.Node {
	kw := p.expect(token.VOID)
	tick := p.expect(token.APOSTROPHE)
	lp := p.expect(token.LPAREN)
	inner := p.parseExpression()
	return syntax.NewNode(cst.VoidCast, kw, tick, lp, inner, p.expect(token.RPAREN))
}

func (p *Parser) parseConcatenation() *syntax.Node {
	children := []syntax.Symbol{p.expect(token.LBRACE), p.parseExpression()}
	for p.check(token.COMMA) {
		children = append(children, p.leaf(), p.parseExpression())
	}
	children = append(children, p.expect(token.RBRACE))
	return syntax.NewNode(cst.Concatenation, children...)
}

// parseMacroCall parses `NAME or `NAME(args). Arguments are only taken when
// the parenthesis follows the name immediately.
func (p *Parser) parseMacroCall() syntax.Symbol {
	id := p.expect(token.MACRO_IDENT)
	if !p.check(token.LPAREN) || p.token.Offset() != id.Token.End() {
		return id
	}
	return syntax.NewNode(cst.MacroCall, id, p.parseArgumentList())
}

// parseReference parses identifiers with qualification, hierarchy, selects
// and calls. A call wraps the reference parsed so far; a hierarchy step after
// a call starts a new reference rooted at the call.
func (p *Parser) parseReference() syntax.Symbol {
	parts := []syntax.Symbol{p.parseTypeName()}
	for {
		switch p.token.Kind {
		case token.DOT:
			dot := p.leaf()
			parts = append(parts, syntax.NewNode(cst.HierarchyExtension, dot, p.expect(token.IDENT)))
		case token.LBRACKET:
			lb := p.leaf()
			index := p.parseExpression()
			var colon, lsb syntax.Symbol
			if p.check(token.COLON) {
				colon = p.leaf()
				lsb = p.parseExpression()
			}
			parts = append(parts, syntax.NewNode(cst.Select, lb, index, colon, lsb, p.expect(token.RBRACKET)))
		case token.LPAREN:
			ref := syntax.NewNode(cst.Reference, parts...)
			call := syntax.NewNode(cst.FunctionCall, ref, p.parseArgumentList())
			if !p.check(token.DOT) && !p.check(token.LBRACKET) {
				return call
			}
			parts = []syntax.Symbol{call}
		default:
			return syntax.NewNode(cst.Reference, parts...)
		}
	}
}

// parseArgumentList parses ( [expr {, expr}] ).
func (p *Parser) parseArgumentList() *syntax.Node {
	children := []syntax.Symbol{p.expect(token.LPAREN)}
	if !p.check(token.RPAREN) {
		children = append(children, p.parseExpression())
		for p.check(token.COMMA) {
			children = append(children, p.leaf(), p.parseExpression())
		}
	}
	children = append(children, p.expect(token.RPAREN))
	return syntax.NewNode(cst.ArgumentList, children...)
}
