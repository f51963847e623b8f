package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/svkit/pkg/token"
)

// ErrSyntax is matched by every lex or parse failure.
var ErrSyntax = errors.New("syntax error")

// Severity of a diagnostic.
type Severity int

// Diagnostic severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a positioned parser message.
type Diagnostic struct {
	Pos      token.Position
	Message  string
	Severity Severity
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}

// SyntaxError reports a fatal lex or parse failure.
type SyntaxError struct {
	Filename    string
	Diagnostics []Diagnostic
}

func (e *SyntaxError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, fmt.Sprintf("%s:%d:%d: %s", e.Filename, d.Pos.Line, d.Pos.Column, d.Message))
	}
	return "syntax error: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrSyntax) hold.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// Common error messages
const (
	errUnexpectedToken     = "unexpected %s %q, expected %s"
	errUnterminatedString  = "unterminated string literal"
	errUnterminatedComment = "unterminated block comment"
	errInvalidToken        = "invalid token %q"
	errEndLabelMismatch    = "end label %q does not match %q"
)
