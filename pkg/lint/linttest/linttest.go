// Package linttest runs table-driven lint rule tests.
//
// A case is written as source fragments, some of which are marked as the
// tokens the rule is expected to flag:
//
//	linttest.Run(t, rules.VoidCast, []linttest.Case{
//		{Code: linttest.Code("module m; endmodule")},
//		{Code: linttest.Code("function f; void'(",
//			linttest.Want(token.IDENT, "uvm_hdl_read"), "(x)); endfunction")},
//	})
package linttest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/svkit/internal/testutil"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/parser"
	"github.com/leapstack-labs/svkit/pkg/token"
)

// DefaultFilename is used for cases that do not name a file.
const DefaultFilename = "test.sv"

// Fragment is a piece of test source. Marked fragments are expected findings.
type Fragment struct {
	Kind   token.Kind
	Text   string
	marked bool
}

// Text is an unmarked fragment.
func Text(s string) Fragment { return Fragment{Text: s} }

// Want marks text as the token of kind k a violation must anchor on.
func Want(k token.Kind, text string) Fragment {
	return Fragment{Kind: k, Text: text, marked: true}
}

// Code builds fragments from strings and Fragments.
func Code(parts ...any) []Fragment {
	out := make([]Fragment, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			out = append(out, Text(v))
		case Fragment:
			out = append(out, v)
		default:
			panic(fmt.Sprintf("linttest.Code: unsupported part %T", p))
		}
	}
	return out
}

// Finding is the comparable form of an expected or reported violation.
type Finding struct {
	Offset int
	Kind   token.Kind
	Text   string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %q @%d", f.Kind, f.Text, f.Offset)
}

// Case is one rule test.
type Case struct {
	Name     string
	Filename string
	Options  map[string]any
	Code     []Fragment
}

// Source concatenates the fragments and returns the expected findings.
func (c Case) Source() (string, []Finding) {
	var b strings.Builder
	var want []Finding
	for _, f := range c.Code {
		if f.marked {
			want = append(want, Finding{Offset: b.Len(), Kind: f.Kind, Text: f.Text})
		}
		b.WriteString(f.Text)
	}
	return b.String(), want
}

func (c Case) name(i int) string {
	if c.Name != "" {
		return c.Name
	}
	src, _ := c.Source()
	if len(src) > 40 {
		src = src[:40] + "..."
	}
	return fmt.Sprintf("%d/%s", i, src)
}

// Run lints every case with def alone and compares the reported anchors
// with the marked fragments.
func Run(t *testing.T, def lint.RuleDef, cases []Case) {
	t.Helper()
	for i, tc := range cases {
		t.Run(tc.name(i), func(t *testing.T) {
			status := Lint(t, def, tc)
			_, want := tc.Source()
			got := make([]Finding, 0, len(status.Violations))
			for _, v := range status.Violations {
				got = append(got, Finding{Offset: v.Token.Offset(), Kind: v.Token.Kind, Text: v.Token.Text})
			}
			if want == nil {
				want = []Finding{}
			}
			assert.Equal(t, want, got, "violations of %s", def.Name)
			assert.Equal(t, def.Name, status.RuleName)
		})
	}
}

// Lint parses the case and returns def's status.
func Lint(t *testing.T, def lint.RuleDef, tc Case) lint.Status {
	t.Helper()
	filename := tc.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	src, _ := tc.Source()
	res, err := parser.Parse(src, filename)
	require.NoError(t, err, "parse %q", src)

	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(def))
	cfg := lint.NewConfig()
	if tc.Options != nil {
		cfg.SetRuleOptions(def.Name, tc.Options)
	}
	analyzer := lint.NewAnalyzer(reg, cfg, lint.WithLogger(testutil.NewTestLogger(t)))
	statuses, err := analyzer.Analyze(context.Background(), res.Tree, filename)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	return statuses[0]
}
