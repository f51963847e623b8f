package parser

import (
	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Item rules:
//
//	param_decl  → ('parameter'|'localparam') param_body ';'
//	param_body  → 'type' id ['=' type_or_expr]
//	            | [type_info] id [unpacked_dims] ['=' expr]
//	type_info   → [base] ['signed'|'unsigned'] dimension*
//	base        → builtin_type | id ('::' id)*
//	data_decl   → type_info var (',' var)* ';'
//	var         → id [unpacked_dims] ['=' expr]

// parseItems parses items until one of the terminators (not consumed).
func (p *Parser) parseItems(terminators ...token.Kind) []syntax.Symbol {
	var items []syntax.Symbol
	for !p.atAny(terminators...) {
		if p.check(token.EOF) {
			p.fail(errUnexpectedToken, p.token.Kind, p.token.Text, terminators[0])
		}
		items = append(items, p.parseItem())
	}
	return items
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseItem() syntax.Symbol {
	switch p.token.Kind {
	case token.MODULE:
		return p.parseModule()
	case token.PACKAGE:
		return p.parsePackage()
	case token.CLASS:
		return p.parseClass()
	case token.VIRTUAL:
		if p.peek(1).Kind == token.CLASS {
			return p.parseClass()
		}
		return p.parseFunction()
	case token.FUNCTION, token.STATIC:
		return p.parseFunction()
	case token.PARAMETER, token.LOCALPARAM:
		return p.parseParamDeclaration(false)
	case token.ASSIGN:
		return p.parseContinuousAssign()
	case token.INITIAL:
		kw := p.leaf()
		return syntax.NewNode(cst.InitialStatement, kw, p.parseStatement())
	case token.MACRO_IDENT:
		call := p.parseMacroCall()
		return syntax.NewNode(cst.ExpressionStatement, call, p.accept(token.SEMICOLON))
	case token.SEMICOLON:
		return syntax.NewNode(cst.NullStatement, p.leaf())
	}
	if p.token.Kind.IsDirective() {
		return p.parseDirective()
	}
	if p.atDataDeclaration() {
		return p.parseDataDeclaration()
	}
	p.fail("unexpected %s %q at item level", p.token.Kind, p.token.Text)
	return nil
}

// parseEndLabel parses an optional ": name" after an end keyword and warns
// when it does not repeat the declared name.
func (p *Parser) parseEndLabel(name string) syntax.Symbol {
	if !p.check(token.COLON) {
		return nil
	}
	colon := p.leaf()
	id := p.expect(token.IDENT)
	if id.Token.Text != name {
		p.warn(id.Token.Pos, errEndLabelMismatch, id.Token.Text, name)
	}
	return syntax.NewNode(cst.EndLabel, colon, id)
}

func (p *Parser) parseModule() *syntax.Node {
	kw := p.expect(token.MODULE)
	id := p.expect(token.IDENT)
	var params, ports syntax.Symbol
	if p.check(token.HASH) {
		params = p.parseFormalParameterList()
	}
	if p.check(token.LPAREN) {
		ports = p.parsePortList()
	}
	semi := p.expect(token.SEMICOLON)
	header := syntax.NewNode(cst.ModuleHeader, kw, id, params, ports, semi)
	items := p.parseItems(token.ENDMODULE)
	end := p.expect(token.ENDMODULE)
	return syntax.NewNode(cst.ModuleDeclaration, header,
		syntax.NewNode(cst.ModuleItemList, items...), end, p.parseEndLabel(id.Token.Text))
}

func (p *Parser) parsePackage() *syntax.Node {
	kw := p.expect(token.PACKAGE)
	id := p.expect(token.IDENT)
	semi := p.expect(token.SEMICOLON)
	items := p.parseItems(token.ENDPACKAGE)
	end := p.expect(token.ENDPACKAGE)
	return syntax.NewNode(cst.PackageDeclaration, kw, id, semi,
		syntax.NewNode(cst.PackageItemList, items...), end, p.parseEndLabel(id.Token.Text))
}

func (p *Parser) parseClass() *syntax.Node {
	virtual := p.accept(token.VIRTUAL)
	kw := p.expect(token.CLASS)
	id := p.expect(token.IDENT)
	var params, extends syntax.Symbol
	if p.check(token.HASH) {
		params = p.parseFormalParameterList()
	}
	if p.check(token.EXTENDS) {
		ext := p.leaf()
		extends = syntax.NewNode(cst.ExtendsClause, ext, p.parseTypeName())
	}
	semi := p.expect(token.SEMICOLON)
	header := syntax.NewNode(cst.ClassHeader, virtual, kw, id, params, extends, semi)
	items := p.parseItems(token.ENDCLASS)
	end := p.expect(token.ENDCLASS)
	return syntax.NewNode(cst.ClassDeclaration, header,
		syntax.NewNode(cst.ClassItemList, items...), end, p.parseEndLabel(id.Token.Text))
}

// parseFormalParameterList parses #( param, ... ).
func (p *Parser) parseFormalParameterList() *syntax.Node {
	children := []syntax.Symbol{p.expect(token.HASH), p.expect(token.LPAREN)}
	if !p.check(token.RPAREN) {
		children = append(children, p.parseParamDeclaration(true))
		for p.check(token.COMMA) {
			children = append(children, p.leaf(), p.parseParamDeclaration(true))
		}
	}
	children = append(children, p.expect(token.RPAREN))
	return syntax.NewNode(cst.FormalParameterList, children...)
}

// parseParamDeclaration parses a parameter. Inside a parameter port list the
// keyword is optional and there is no semicolon.
func (p *Parser) parseParamDeclaration(inPorts bool) *syntax.Node {
	var kw syntax.Symbol
	if p.check(token.PARAMETER) || p.check(token.LOCALPARAM) {
		kw = p.leaf()
	} else if !inPorts {
		p.fail(errUnexpectedToken, p.token.Kind, p.token.Text, "parameter")
	}

	var semi syntax.Symbol
	finish := func() {
		if !inPorts {
			semi = p.expect(token.SEMICOLON)
		}
	}

	if p.check(token.TYPE) {
		typ := p.leaf()
		id := p.expect(token.IDENT)
		var eq, rhs syntax.Symbol
		if p.check(token.EQ) {
			eq = p.leaf()
			rhs = p.parseTypeOrExpression()
		}
		assign := syntax.NewNode(cst.TypeAssignment, id, eq, rhs)
		finish()
		return syntax.NewNode(cst.ParamDeclaration, kw, typ, assign, semi)
	}

	var info *syntax.Node
	if p.atTypeStart() {
		info = p.parseTypeInfo()
	} else {
		info = syntax.NewNode(cst.TypeInfo, nil, nil, nil)
	}
	id := p.expect(token.IDENT)
	paramType := syntax.NewNode(cst.ParamType, info, id, opt(p.parseDimensions(cst.UnpackedDimensions)))
	trailing := p.parseTrailingAssign()
	finish()
	return syntax.NewNode(cst.ParamDeclaration, kw, paramType, trailing, semi)
}

func (p *Parser) parseTrailingAssign() syntax.Symbol {
	if !p.check(token.EQ) {
		return nil
	}
	eq := p.leaf()
	return syntax.NewNode(cst.TrailingAssign, eq, p.parseExpression())
}

// parseTypeOrExpression parses the right-hand side of a type parameter.
func (p *Parser) parseTypeOrExpression() syntax.Symbol {
	if p.token.Kind.IsDataType() || p.check(token.SIGNED) || p.check(token.UNSIGNED) {
		return p.parseTypeInfo()
	}
	return p.parseExpression()
}

// atTypeStart reports whether an explicit type begins at the current token:
// a builtin type, signing, packed dimensions, or a user type name followed by
// another identifier.
func (p *Parser) atTypeStart() bool {
	k := p.token.Kind
	if k.IsDataType() || k == token.SIGNED || k == token.UNSIGNED || k == token.LBRACKET {
		return true
	}
	if k != token.IDENT {
		return false
	}
	i := 1
	for p.peek(i).Kind == token.COLONCOLON && p.peek(i+1).Kind == token.IDENT {
		i += 2
	}
	if i > 1 {
		return true
	}
	return p.peek(i).Kind == token.IDENT
}

// atDataDeclaration reports whether a data declaration starts here. User
// typed declarations need the type name, optional packed dimensions, then the
// variable identifier.
func (p *Parser) atDataDeclaration() bool {
	k := p.token.Kind
	if k.IsDataType() {
		return true
	}
	if k != token.IDENT {
		return false
	}
	i := 1
	for p.peek(i).Kind == token.COLONCOLON && p.peek(i+1).Kind == token.IDENT {
		i += 2
	}
	for p.peek(i).Kind == token.LBRACKET {
		depth := 0
		for {
			switch p.peek(i).Kind {
			case token.LBRACKET:
				depth++
			case token.RBRACKET:
				depth--
			case token.EOF:
				return false
			}
			i++
			if depth == 0 {
				break
			}
		}
	}
	return p.peek(i).Kind == token.IDENT
}

// parseTypeInfo parses [base] [signing] [packed dimensions].
func (p *Parser) parseTypeInfo() *syntax.Node {
	var base syntax.Symbol
	switch {
	case p.token.Kind.IsDataType():
		base = p.leaf()
	case p.check(token.IDENT):
		base = p.parseTypeName()
	}
	var signing syntax.Symbol
	if p.check(token.SIGNED) || p.check(token.UNSIGNED) {
		signing = p.leaf()
	}
	return syntax.NewNode(cst.TypeInfo, base, signing, opt(p.parseDimensions(cst.PackedDimensions)))
}

// parseTypeName parses id or id::id::...
func (p *Parser) parseTypeName() syntax.Symbol {
	id := p.expect(token.IDENT)
	if !p.check(token.COLONCOLON) {
		return id
	}
	children := []syntax.Symbol{id}
	for p.check(token.COLONCOLON) {
		children = append(children, p.leaf(), p.expect(token.IDENT))
	}
	return syntax.NewNode(cst.QualifiedId, children...)
}

// parseDimensions parses zero or more [msb:lsb] or [size] groups.
func (p *Parser) parseDimensions(tag syntax.NodeTag) *syntax.Node {
	if !p.check(token.LBRACKET) {
		return nil
	}
	var dims []syntax.Symbol
	for p.check(token.LBRACKET) {
		lb := p.leaf()
		msb := p.parseExpression()
		var colon, lsb syntax.Symbol
		if p.check(token.COLON) {
			colon = p.leaf()
			lsb = p.parseExpression()
		}
		rb := p.expect(token.RBRACKET)
		dims = append(dims, syntax.NewNode(cst.Dimension, lb, msb, colon, lsb, rb))
	}
	return syntax.NewNode(tag, dims...)
}

func (p *Parser) parseDataDeclaration() *syntax.Node {
	info := p.parseTypeInfo()
	vars := []syntax.Symbol{p.parseVariable()}
	for p.check(token.COMMA) {
		vars = append(vars, p.leaf(), p.parseVariable())
	}
	semi := p.expect(token.SEMICOLON)
	return syntax.NewNode(cst.DataDeclaration, info, syntax.NewNode(cst.VariableDeclarationList, vars...), semi)
}

func (p *Parser) parseVariable() *syntax.Node {
	id := p.expect(token.IDENT)
	dims := opt(p.parseDimensions(cst.UnpackedDimensions))
	return syntax.NewNode(cst.VariableDeclaration, id, dims, p.parseTrailingAssign())
}

func (p *Parser) parseContinuousAssign() *syntax.Node {
	kw := p.expect(token.ASSIGN)
	lhs := p.parseExpression()
	eq := p.expect(token.EQ)
	rhs := p.parseExpression()
	return syntax.NewNode(cst.ContinuousAssign, kw, lhs, eq, rhs, p.expect(token.SEMICOLON))
}

// parseFunction parses a function declaration.
func (p *Parser) parseFunction() *syntax.Node {
	var qualifier syntax.Symbol
	if p.check(token.VIRTUAL) || p.check(token.STATIC) {
		qualifier = p.leaf()
	}
	kw := p.expect(token.FUNCTION)
	var lifetime syntax.Symbol
	if p.check(token.AUTOMATIC) || p.check(token.STATIC) {
		lifetime = p.leaf()
	}
	var ret syntax.Symbol
	switch {
	case p.check(token.VOID):
		ret = p.leaf()
	case p.atTypeStart():
		ret = p.parseTypeInfo()
	}
	id := p.expect(token.IDENT)
	var ports syntax.Symbol
	if p.check(token.LPAREN) {
		ports = p.parsePortList()
	}
	semi := p.expect(token.SEMICOLON)
	header := syntax.NewNode(cst.FunctionHeader, qualifier, kw, lifetime, ret, id, ports, semi)
	body := p.parseStatementList(token.ENDFUNCTION)
	end := p.expect(token.ENDFUNCTION)
	return syntax.NewNode(cst.FunctionDeclaration, header, body, end, p.parseEndLabel(id.Token.Text))
}

// parsePortList parses ( [port {, port}] ) for modules and functions.
func (p *Parser) parsePortList() *syntax.Node {
	children := []syntax.Symbol{p.expect(token.LPAREN)}
	if !p.check(token.RPAREN) {
		children = append(children, p.parsePortItem())
		for p.check(token.COMMA) {
			children = append(children, p.leaf(), p.parsePortItem())
		}
	}
	children = append(children, p.expect(token.RPAREN))
	return syntax.NewNode(cst.PortList, children...)
}

func (p *Parser) parsePortItem() *syntax.Node {
	var dir syntax.Symbol
	switch p.token.Kind {
	case token.INPUT, token.OUTPUT, token.INOUT:
		dir = p.leaf()
	}
	var info syntax.Symbol
	if p.atTypeStart() {
		info = p.parseTypeInfo()
	}
	id := p.expect(token.IDENT)
	dims := opt(p.parseDimensions(cst.UnpackedDimensions))
	return syntax.NewNode(cst.PortItem, dir, info, id, dims, p.parseTrailingAssign())
}

// parseDirective parses a preprocessor directive at item or statement level.
func (p *Parser) parseDirective() *syntax.Node {
	kw := p.leaf()
	switch kw.Token.Kind {
	case token.PP_INCLUDE:
		return syntax.NewNode(cst.PreprocessorInclude, kw, p.expect(token.STRING))
	case token.PP_DEFINE:
		name := p.expect(token.IDENT)
		return syntax.NewNode(cst.PreprocessorDefine, kw, name, p.accept(token.PP_DEFINE_BODY))
	case token.PP_IFDEF:
		return syntax.NewNode(cst.PreprocessorIfdef, kw, p.expect(token.IDENT))
	case token.PP_IFNDEF:
		return syntax.NewNode(cst.PreprocessorIfndef, kw, p.expect(token.IDENT))
	case token.PP_UNDEF:
		return syntax.NewNode(cst.PreprocessorUndef, kw, p.expect(token.IDENT))
	case token.PP_ELSE:
		return syntax.NewNode(cst.PreprocessorElse, kw)
	case token.PP_ENDIF:
		return syntax.NewNode(cst.PreprocessorEndif, kw)
	}
	p.fail("unexpected directive %q", kw.Token.Text)
	return nil
}
