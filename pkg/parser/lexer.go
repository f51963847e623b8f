package parser

import (
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Lexer tokenizes SystemVerilog source. Token text is always a substring of
// the input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch (1-based)

	// define tracks `define NAME BODY: 1 = name expected, 2 = body expected.
	define int
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.readPos+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+n]
}

func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

// Tokenize lexes the whole input, EOF token included.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	if l.define == 2 {
		l.define = 0
		l.skipBlanks()
		if tok, ok := l.readDefineBody(); ok {
			return tok
		}
	}
	if tok, ok := l.skipWhitespaceAndComments(); !ok {
		return tok
	}
	if l.define == 1 && !isLetter(l.ch) {
		l.define = 0
	}

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	start := l.pos
	kind := token.ILLEGAL

	switch l.ch {
	case '+':
		kind = l.twoChar('+', token.INC, token.PLUS)
	case '-':
		kind = l.twoChar('-', token.DEC, token.MINUS)
	case '*':
		kind = token.STAR
	case '/':
		kind = token.SLASH
	case '%':
		kind = token.PERCENT
	case '=':
		kind = l.twoChar('=', token.EQEQ, token.EQ)
	case '!':
		kind = l.twoChar('=', token.NE, token.BANG)
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			kind = token.LE
		case '<':
			l.readChar()
			kind = token.SHL
		default:
			kind = token.LT
		}
	case '>':
		switch l.peekChar() {
		case '=':
			l.readChar()
			kind = token.GE
		case '>':
			l.readChar()
			kind = token.SHR
		default:
			kind = token.GT
		}
	case '&':
		kind = l.twoChar('&', token.ANDAND, token.AMP)
	case '|':
		kind = l.twoChar('|', token.OROR, token.PIPE)
	case '^':
		kind = token.CARET
	case '~':
		kind = token.TILDE
	case '?':
		kind = token.QUESTION
	case '.':
		kind = token.DOT
	case ',':
		kind = token.COMMA
	case ';':
		kind = token.SEMICOLON
	case ':':
		kind = l.twoChar(':', token.COLONCOLON, token.COLON)
	case '#':
		kind = token.HASH
	case '@':
		kind = token.AT
	case '(':
		kind = token.LPAREN
	case ')':
		kind = token.RPAREN
	case '[':
		kind = token.LBRACKET
	case ']':
		kind = token.RBRACKET
	case '{':
		kind = token.LBRACE
	case '}':
		kind = token.RBRACE
	case '"':
		return l.readString(pos)
	case '\'':
		if l.startsBasedLiteral() || l.startsUnbasedLiteral() {
			return l.readNumber(pos)
		}
		kind = token.APOSTROPHE
	case '`':
		return l.readDirective(pos)
	case '$':
		if isLetter(l.peekChar()) {
			l.readChar()
			l.readIdentifier()
			return l.emit(token.SYSTEM_IDENT, start, pos)
		}
	default:
		switch {
		case isLetter(l.ch):
			l.readIdentifier()
			text := l.input[start:l.pos]
			kind := token.LookupIdent(text)
			if l.define == 1 {
				l.define = 2
				kind = token.IDENT
			}
			return token.Token{Kind: kind, Text: text, Pos: pos}
		case isDigit(l.ch):
			return l.readNumber(pos)
		}
	}

	l.readChar()
	return l.emit(kind, start, pos)
}

func (l *Lexer) emit(kind token.Kind, start int, pos token.Position) token.Token {
	return token.Token{Kind: kind, Text: l.input[start:l.pos], Pos: pos}
}

// twoChar consumes the next char when it equals next and returns long,
// otherwise short. The current char is consumed by the caller.
func (l *Lexer) twoChar(next byte, long, short token.Kind) token.Kind {
	if l.peekChar() == next {
		l.readChar()
		return long
	}
	return short
}

func (l *Lexer) skipBlanks() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

// skipWhitespaceAndComments skips to the next token. An unterminated block
// comment is returned as ILLEGAL with ok false.
func (l *Lexer) skipWhitespaceAndComments() (tok token.Token, ok bool) {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			start, pos := l.pos, l.currentPos()
			l.readChar()
			l.readChar()
			for !l.atEOF() && (l.ch != '*' || l.peekChar() != '/') {
				l.readChar()
			}
			if l.atEOF() {
				return l.emit(token.ILLEGAL, start, pos), false
			}
			l.readChar()
			l.readChar()
			continue
		}
		return token.Token{}, true
	}
}

// readString reads a double-quoted string literal, quotes included. An
// unterminated literal yields ILLEGAL.
func (l *Lexer) readString(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // opening quote
	for {
		switch {
		case l.atEOF() || l.ch == '\n':
			return l.emit(token.ILLEGAL, start, pos)
		case l.ch == '\\':
			l.readChar()
			if !l.atEOF() {
				l.readChar()
			}
		case l.ch == '"':
			l.readChar()
			return l.emit(token.STRING, start, pos)
		default:
			l.readChar()
		}
	}
}

// readDirective reads `name: either a known directive or a macro usage.
func (l *Lexer) readDirective(pos token.Position) token.Token {
	start := l.pos
	l.readChar() // backtick
	if !isLetter(l.ch) {
		return l.emit(token.ILLEGAL, start, pos)
	}
	l.readIdentifier()
	kind := token.LookupDirective(l.input[start+1 : l.pos])
	if kind == token.PP_DEFINE {
		l.define = 1
	}
	return l.emit(kind, start, pos)
}

// readDefineBody returns the rest of the line after `define NAME, trailing
// whitespace trimmed. It reports false for an empty body.
func (l *Lexer) readDefineBody() (token.Token, bool) {
	pos := l.currentPos()
	start := l.pos
	end := start
	for l.ch != '\n' && !l.atEOF() {
		if l.ch == '/' && l.peekChar() == '/' {
			break
		}
		if l.ch != ' ' && l.ch != '\t' && l.ch != '\r' {
			end = l.pos + 1
		}
		l.readChar()
	}
	if end == start {
		return token.Token{}, false
	}
	return token.Token{Kind: token.PP_DEFINE_BODY, Text: l.input[start:end], Pos: pos}, true
}

func (l *Lexer) readIdentifier() {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '$' {
		l.readChar()
	}
}

// readNumber reads decimal, real, sized/unsized based and unbased literals:
// 12, 1_000, 1.5, 4'hF, 'd3, 8'sb1010, '1.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.emit(token.NUMBER, start, pos)
	}
	if l.ch == '\'' {
		switch {
		case l.startsBasedLiteral():
			l.readChar() // '
			if l.ch == 's' || l.ch == 'S' {
				l.readChar()
			}
			l.readChar() // base
			for isBasedDigit(l.ch) {
				l.readChar()
			}
		case l.pos == start && l.startsUnbasedLiteral():
			l.readChar()
			l.readChar()
		}
	}
	return l.emit(token.NUMBER, start, pos)
}

// startsBasedLiteral reports whether the apostrophe under the cursor begins
// a base specifier such as 'h, 'sd.
func (l *Lexer) startsBasedLiteral() bool {
	if l.ch != '\'' {
		return false
	}
	i := 0
	if c := l.peekAt(i); c == 's' || c == 'S' {
		i++
	}
	return isBase(l.peekAt(i)) && isBasedDigit(l.peekAt(i+1))
}

func (l *Lexer) startsUnbasedLiteral() bool {
	if l.ch != '\'' {
		return false
	}
	switch l.peekChar() {
	case '0', '1', 'x', 'X', 'z', 'Z':
		next := l.peekAt(1)
		return !isLetter(next) && !isDigit(next)
	}
	return false
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isBase(ch byte) bool {
	switch ch {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

func isBasedDigit(ch byte) bool {
	switch {
	case isDigit(ch), ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		return true
	}
	switch ch {
	case '_', 'x', 'X', 'z', 'Z', '?':
		return true
	}
	return false
}
