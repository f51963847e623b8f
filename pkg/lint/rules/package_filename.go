package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/svkit/pkg/cst"
	"github.com/leapstack-labs/svkit/pkg/lint"
	"github.com/leapstack-labs/svkit/pkg/syntax"
)

const (
	packageFilenameName  = "package-filename"
	packageFilenameTopic = "file-names"
)

// PackageFilename checks that package names match the file they live in.
var PackageFilename = lint.RuleDef{
	Name:        packageFilenameName,
	Topic:       packageFilenameTopic,
	Description: "Checks that the package name matches the filename.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"optional_suffix"},
	New:         newPackageFilename,
	Rationale:   "One package per file, named after the file, keeps packages easy to locate and include.",
	BadExample: `// file: foo.sv
package bar;
endpackage`,
	GoodExample: `// file: foo_pkg.sv
package foo;
endpackage`,
}

type packageFilenameRule struct {
	suffix     string
	violations lint.ViolationSet
}

func newPackageFilename(opts map[string]any) (lint.Rule, error) {
	return &packageFilenameRule{
		suffix: lint.GetStringOption(opts, "optional_suffix", "_pkg"),
	}, nil
}

// unitName is the file's base name up to the first dot.
func unitName(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.SplitN(base, ".", 2)[0]
}

// Lint reports every package whose name matches neither the unit name nor
// the unit name with the optional suffix removed:
//
//	package | file       | allowed
//	foo     | foo.sv     | yes
//	foo     | foo_pkg.sv | yes
//	foo_pkg | foo_pkg.sv | yes
//	foo_pkg | foo.sv     | no
func (r *packageFilenameRule) Lint(tree syntax.Symbol, filename string) error {
	unit := unitName(filename)
	if unit == "" {
		return nil
	}
	for _, m := range cst.FindAllPackageDeclarations(tree) {
		tok, err := cst.GetPackageNameToken(m.Symbol)
		if err != nil {
			return err
		}
		if tok.Text == unit || tok.Text+r.suffix == unit {
			continue
		}
		r.violations.Add(lint.Violation{
			Token: tok,
			Message: fmt.Sprintf("Package declaration name must match the file name "+
				"(ignoring optional %q file name suffix).  declaration: %q vs. basename(file): %q",
				r.suffix, tok.Text, unit),
			Context: m.Context,
		})
	}
	return nil
}

func (r *packageFilenameRule) Report() lint.Status {
	return lint.Status{
		RuleName:   packageFilenameName,
		Citation:   lint.Citation(packageFilenameTopic),
		Violations: r.violations.Items(),
	}
}
