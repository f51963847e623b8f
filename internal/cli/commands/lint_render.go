package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/svkit/internal/cli/output"
	"github.com/leapstack-labs/svkit/pkg/lint"
)

// LintSummary counts findings across files.
type LintSummary struct {
	FilesAnalyzed int `json:"files_analyzed" yaml:"files_analyzed"`
	FilesFailed   int `json:"files_failed" yaml:"files_failed"`
	TotalIssues   int `json:"total_issues" yaml:"total_issues"`
	Errors        int `json:"errors" yaml:"errors"`
	Warnings      int `json:"warnings" yaml:"warnings"`
	Info          int `json:"info" yaml:"info"`
	Hints         int `json:"hints" yaml:"hints"`
}

// LintViolation is the structured form of one finding.
type LintViolation struct {
	Rule     string `json:"rule" yaml:"rule"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
	Column   int    `json:"column" yaml:"column"`
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`
}

// LintFileOutput is the structured form of one file's findings.
type LintFileOutput struct {
	Path       string          `json:"path" yaml:"path"`
	Error      string          `json:"error,omitempty" yaml:"error,omitempty"`
	Violations []LintViolation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// LintOutput is the structured lint report.
type LintOutput struct {
	Summary LintSummary      `json:"summary" yaml:"summary"`
	Files   []LintFileOutput `json:"files" yaml:"files"`
}

func buildLintOutput(results []lintFileResult) LintOutput {
	out := LintOutput{Summary: LintSummary{FilesAnalyzed: len(results)}}
	for _, res := range results {
		fo := LintFileOutput{Path: res.Path}
		if res.Err != nil {
			fo.Error = res.Err.Error()
			out.Summary.FilesFailed++
		}
		for _, st := range res.Statuses {
			for _, v := range st.Violations {
				fo.Violations = append(fo.Violations, LintViolation{
					Rule:     st.RuleName,
					Severity: st.Severity.String(),
					Message:  v.Message,
					Line:     v.Token.Pos.Line,
					Column:   v.Token.Pos.Column,
					Citation: st.Citation,
				})
				out.Summary.TotalIssues++
				switch st.Severity {
				case lint.SeverityError:
					out.Summary.Errors++
				case lint.SeverityWarning:
					out.Summary.Warnings++
				case lint.SeverityInfo:
					out.Summary.Info++
				case lint.SeverityHint:
					out.Summary.Hints++
				}
			}
		}
		sort.SliceStable(fo.Violations, func(i, j int) bool {
			a, b := fo.Violations[i], fo.Violations[j]
			if a.Line != b.Line {
				return a.Line < b.Line
			}
			return a.Column < b.Column
		})
		if fo.Error != "" || len(fo.Violations) > 0 {
			out.Files = append(out.Files, fo)
		}
	}
	return out
}

// renderLintResults renders results and reports whether anything was found.
func renderLintResults(r *output.Renderer, results []lintFileResult) (bool, error) {
	report := buildLintOutput(results)
	found := report.Summary.TotalIssues > 0 || report.Summary.FilesFailed > 0

	if ok, err := r.Structured(report); ok {
		return found, err
	}
	if !found {
		r.Success(fmt.Sprintf("No lint issues found in %d files", report.Summary.FilesAnalyzed))
		return false, nil
	}

	styles := r.Styles()
	for _, f := range report.Files {
		r.Println(styles.Path.Render(f.Path))
		if f.Error != "" {
			r.Printf("  %s  %s\n", styles.Error.Render("parse  "), firstLine(f.Error))
		}
		for _, v := range f.Violations {
			loc := fmt.Sprintf("%d:%d", v.Line, v.Column)
			r.Printf("  %s  %s  %s %s %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityLabel(styles, v.Severity),
				v.Message,
				styles.Muted.Render(v.Citation),
				styles.Bold.Render("["+v.Rule+"]"),
			)
		}
		r.Println("")
	}

	parts := []string{fmt.Sprintf("%d issues", report.Summary.TotalIssues)}
	for _, c := range []struct {
		n     int
		label string
	}{
		{report.Summary.Errors, "errors"},
		{report.Summary.Warnings, "warnings"},
		{report.Summary.Info, "info"},
		{report.Summary.Hints, "hints"},
		{report.Summary.FilesFailed, "unparsable files"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(parts, ", "), report.Summary.FilesAnalyzed)
	return true, nil
}

func severityLabel(styles *output.Styles, sev string) string {
	label := fmt.Sprintf("%-7s", sev)
	switch sev {
	case "error":
		return styles.Error.Render(label)
	case "warning":
		return styles.Warning.Render(label)
	case "info":
		return styles.Info.Render(label)
	default:
		return styles.Muted.Render(label)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
