package parser

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Statement rules:
//
//	stmt        → lvalue '=' expr ';'
//	            | expr ';'
//	            | 'begin' stmt* 'end'
//	            | 'if' '(' expr ')' stmt ['else' stmt]
//	            | 'for' '(' [for_init] ';' [expr] ';' [for_step] ')' stmt
//	            | 'return' [expr] ';'
//	            | data_decl | param_decl | directive | ';'
//	for_init    → [type_info] id '=' expr
//	for_step    → expr ['=' expr]

// parseStatementList parses statements until one of the terminators.
func (p *Parser) parseStatementList(terminators ...token.Kind) *syntax.Node {
	var stmts []syntax.Symbol
	for !p.atAny(terminators...) {
		if p.check(token.EOF) {
			p.fail(errUnexpectedToken, p.token.Kind, p.token.Text, terminators[0])
		}
		stmts = append(stmts, p.parseStatement())
	}
	return syntax.NewNode(cst.StatementList, stmts...)
}

func (p *Parser) parseStatement() syntax.Symbol {
	switch p.token.Kind {
	case token.BEGIN:
		begin := p.leaf()
		body := p.parseStatementList(token.END)
		return syntax.NewNode(cst.SeqBlock, begin, body, p.expect(token.END))
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.RETURN:
		kw := p.leaf()
		var value syntax.Symbol
		if !p.check(token.SEMICOLON) {
			value = p.parseExpression()
		}
		return syntax.NewNode(cst.ReturnStatement, kw, value, p.expect(token.SEMICOLON))
	case token.SEMICOLON:
		return syntax.NewNode(cst.NullStatement, p.leaf())
	case token.PARAMETER, token.LOCALPARAM:
		return p.parseParamDeclaration(false)
	case token.MACRO_IDENT:
		call := p.parseMacroCall()
		return syntax.NewNode(cst.ExpressionStatement, call, p.accept(token.SEMICOLON))
	}
	if p.token.Kind.IsDirective() {
		return p.parseDirective()
	}
	if p.atDataDeclaration() {
		return p.parseDataDeclaration()
	}

	expr := p.parseExpression()
	if p.check(token.EQ) {
		eq := p.leaf()
		rhs := p.parseExpression()
		return syntax.NewNode(cst.AssignmentStatement, expr, eq, rhs, p.expect(token.SEMICOLON))
	}
	return syntax.NewNode(cst.ExpressionStatement, expr, p.expect(token.SEMICOLON))
}

func (p *Parser) parseIf() *syntax.Node {
	kw := p.expect(token.IF)
	lp := p.expect(token.LPAREN)
	cond := p.parseExpression()
	rp := p.expect(token.RPAREN)
	then := p.parseStatement()
	var elseKw, elseStmt syntax.Symbol
	if p.check(token.ELSE) {
		elseKw = p.leaf()
		elseStmt = p.parseStatement()
	}
	return syntax.NewNode(cst.IfStatement, kw, lp, cond, rp, then, elseKw, elseStmt)
}

func (p *Parser) parseFor() *syntax.Node {
	kw := p.expect(token.FOR)
	lp := p.expect(token.LPAREN)

	var init syntax.Symbol
	if !p.check(token.SEMICOLON) {
		var info syntax.Symbol
		if p.atTypeStart() {
			info = p.parseTypeInfo()
		}
		id := p.expect(token.IDENT)
		eq := p.expect(token.EQ)
		init = syntax.NewNode(cst.ForInitialization, info, id, eq, p.parseExpression())
	}
	semi1 := p.expect(token.SEMICOLON)

	var cond syntax.Symbol
	if !p.check(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	semi2 := p.expect(token.SEMICOLON)

	var step syntax.Symbol
	if !p.check(token.RPAREN) {
		step = p.parseExpression()
		if p.check(token.EQ) {
			eq := p.leaf()
			step = syntax.NewNode(cst.AssignmentExpression, step, eq, p.parseExpression())
		}
	}
	rp := p.expect(token.RPAREN)
	return syntax.NewNode(cst.ForLoopStatement, kw, lp, init, semi1, cond, semi2, step, rp, p.parseStatement())
}
