// Package token defines the token kinds for the SystemVerilog subset understood
// by svkit.
//
// A Token never owns its text: Text is a substring of the source the lexer was
// given, so a token stays valid exactly as long as that source string does.
package token

import "fmt"

// Kind is the lexical category of a token.
//
//nolint:revive // Accept stutter as token.Kind mirrors the grammar terminology
type Kind int32

//nolint:revive // ALL_CAPS names follow the lexer convention
const (
	// Special tokens
	EOF Kind = iota
	ILLEGAL

	// Literals
	IDENT        // foo_h
	SYSTEM_IDENT // $sformat
	MACRO_IDENT  // `FOO
	NUMBER       // 12, 4'hF, 'd3
	STRING       // "quoted", quotes included

	// Operators and punctuation
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	INC        // ++
	DEC        // --
	EQ         // =
	EQEQ       // ==
	NE         // !=
	LT         // <
	GT         // >
	LE         // <=
	GE         // >=
	SHL        // <<
	SHR        // >>
	ANDAND     // &&
	OROR       // ||
	AMP        // &
	PIPE       // |
	CARET      // ^
	TILDE      // ~
	BANG       // !
	QUESTION   // ?
	DOT        // .
	COMMA      // ,
	SEMICOLON  // ;
	COLON      // :
	COLONCOLON // ::
	HASH       // #
	AT         // @
	APOSTROPHE // '
	LPAREN     // (
	RPAREN     // )
	LBRACKET   // [
	RBRACKET   // ]
	LBRACE     // {
	RBRACE     // }

	// Preprocessor directives
	PP_INCLUDE     // `include
	PP_DEFINE      // `define
	PP_DEFINE_BODY // text after `define NAME up to end of line
	PP_IFDEF       // `ifdef
	PP_IFNDEF      // `ifndef
	PP_ELSE        // `else
	PP_ENDIF       // `endif
	PP_UNDEF       // `undef

	keywordStart
	// Keywords (alphabetical)
	ASSIGN
	AUTOMATIC
	BEGIN
	BIT
	BYTE
	CLASS
	ELSE
	END
	ENDCLASS
	ENDFUNCTION
	ENDMODULE
	ENDPACKAGE
	EXTENDS
	FOR
	FUNCTION
	IF
	INITIAL
	INOUT
	INPUT
	INT
	INTEGER
	LOCALPARAM
	LOGIC
	LONGINT
	MODULE
	OUTPUT
	PACKAGE
	PARAMETER
	REAL
	REG
	RETURN
	SHORTINT
	SIGNED
	STATIC
	STRING_TYPE // string
	TYPE
	UNSIGNED
	VIRTUAL
	VOID
	WIRE
	keywordEnd
)

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", k)
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsDirective reports whether k is a preprocessor directive.
func (k Kind) IsDirective() bool {
	return k >= PP_INCLUDE && k <= PP_UNDEF
}

// IsDataType reports whether k names a built-in data type.
func (k Kind) IsDataType() bool {
	switch k {
	case BIT, BYTE, INT, INTEGER, LOGIC, LONGINT, REAL, REG, SHORTINT, STRING_TYPE, WIRE:
		return true
	}
	return false
}

var kindNames = map[Kind]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:        "SymbolIdentifier",
	SYSTEM_IDENT: "SystemTFIdentifier",
	MACRO_IDENT:  "MacroIdentifier",
	NUMBER:       "TK_DecNumber",
	STRING:       "TK_StringLiteral",

	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASH:      "/",
	PERCENT:    "%",
	INC:        "++",
	DEC:        "--",
	EQ:         "=",
	EQEQ:       "==",
	NE:         "!=",
	LT:         "<",
	GT:         ">",
	LE:         "<=",
	GE:         ">=",
	SHL:        "<<",
	SHR:        ">>",
	ANDAND:     "&&",
	OROR:       "||",
	AMP:        "&",
	PIPE:       "|",
	CARET:      "^",
	TILDE:      "~",
	BANG:       "!",
	QUESTION:   "?",
	DOT:        ".",
	COMMA:      ",",
	SEMICOLON:  ";",
	COLON:      ":",
	COLONCOLON: "::",
	HASH:       "#",
	AT:         "@",
	APOSTROPHE: "'",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACKET:   "[",
	RBRACKET:   "]",
	LBRACE:     "{",
	RBRACE:     "}",

	PP_INCLUDE:     "PP_Include",
	PP_DEFINE:      "PP_define",
	PP_DEFINE_BODY: "PP_define_body",
	PP_IFDEF:       "PP_ifdef",
	PP_IFNDEF:      "PP_ifndef",
	PP_ELSE:        "PP_else",
	PP_ENDIF:       "PP_endif",
	PP_UNDEF:       "PP_undef",
}

// keywords maps keyword spellings to their kinds. SystemVerilog is case
// sensitive, so lookups are exact.
var keywords = map[string]Kind{
	"assign":      ASSIGN,
	"automatic":   AUTOMATIC,
	"begin":       BEGIN,
	"bit":         BIT,
	"byte":        BYTE,
	"class":       CLASS,
	"else":        ELSE,
	"end":         END,
	"endclass":    ENDCLASS,
	"endfunction": ENDFUNCTION,
	"endmodule":   ENDMODULE,
	"endpackage":  ENDPACKAGE,
	"extends":     EXTENDS,
	"for":         FOR,
	"function":    FUNCTION,
	"if":          IF,
	"initial":     INITIAL,
	"inout":       INOUT,
	"input":       INPUT,
	"int":         INT,
	"integer":     INTEGER,
	"localparam":  LOCALPARAM,
	"logic":       LOGIC,
	"longint":     LONGINT,
	"module":      MODULE,
	"output":      OUTPUT,
	"package":     PACKAGE,
	"parameter":   PARAMETER,
	"real":        REAL,
	"reg":         REG,
	"return":      RETURN,
	"shortint":    SHORTINT,
	"signed":      SIGNED,
	"static":      STATIC,
	"string":      STRING_TYPE,
	"type":        TYPE,
	"unsigned":    UNSIGNED,
	"virtual":     VIRTUAL,
	"void":        VOID,
	"wire":        WIRE,
}

// directives maps directive names (without the backtick) to their kinds.
var directives = map[string]Kind{
	"include": PP_INCLUDE,
	"define":  PP_DEFINE,
	"ifdef":   PP_IFDEF,
	"ifndef":  PP_IFNDEF,
	"else":    PP_ELSE,
	"endif":   PP_ENDIF,
	"undef":   PP_UNDEF,
}

func init() {
	for name, k := range keywords {
		kindNames[k] = name
	}
}

// LookupIdent returns the keyword kind for ident, or IDENT.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENT
}

// LookupDirective returns the directive kind for a backtick name (without the
// backtick), or MACRO_IDENT for a macro usage.
func LookupDirective(name string) Kind {
	if k, ok := directives[name]; ok {
		return k
	}
	return MACRO_IDENT
}

// Token is a lexical token.
type Token struct {
	Kind Kind
	Text string // borrowed from the source
	Pos  Position
}

// Offset returns the byte offset of the first character of the token.
func (t Token) Offset() int {
	return t.Pos.Offset
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Text)
}

// Span returns the source range covered by the token. The lexer never
// produces multi-line tokens.
func (t Token) Span() Span {
	end := t.Pos
	end.Offset += len(t.Text)
	end.Column += len(t.Text)
	return Span{Start: t.Pos, End: end}
}

func (t Token) String() string {
	return fmt.Sprintf("(#%s @%d-%d: %q)", t.Kind, t.Offset(), t.End(), t.Text)
}
