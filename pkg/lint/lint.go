package lint

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/svkit/pkg/syntax"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// Severity indicates the importance of a finding.
type Severity int

// Severity levels.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity parses a severity name as written in configuration.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

// Violation is one finding, anchored on a token of the analyzed source.
type Violation struct {
	Token   token.Token
	Message string
	// Context holds the ancestor tags of the offending symbol, when known.
	Context syntax.Snapshot
}

// NewViolation builds a violation; ctx may be nil.
func NewViolation(tok token.Token, message string, ctx *syntax.Context) Violation {
	v := Violation{Token: tok, Message: message}
	if ctx != nil {
		v.Context = ctx.Snapshot()
	}
	return v
}

// Status is the report of one rule instance over one file.
type Status struct {
	RuleName   string
	Citation   string
	Severity   Severity
	Violations []Violation
}

// IsOK reports whether the rule found nothing.
func (s Status) IsOK() bool { return len(s.Violations) == 0 }
