package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/svkit/internal/cli/output"
	"github.com/leapstack-labs/svkit/pkg/propagate"
)

// ErrUnitsFailed is returned by the propagate command when some units did
// not parse. The export is still written.
var ErrUnitsFailed = errors.New("units failed to parse")

// PropagateOptions holds options for the propagate command.
type PropagateOptions struct {
	Defines     []string // NAME=VALUE macro definitions
	IncludeDirs []string // Directories unit names are relative to
	OutFile     string   // Export destination
	Encoding    string   // Export encoding: json, yaml, msgpack
	Format      string   // Output format override
}

// NewPropagateCommand creates the propagate command.
func NewPropagateCommand() *cobra.Command {
	opts := &PropagateOptions{}
	cmd := &cobra.Command{
		Use:   "propagate [path...]",
		Short: "Resolve includes and fold constants across files",
		Long: "Parse every source in parallel, resolve `include directives against the\n" +
			"other sources, link each resolved include to its target and fold constant\n" +
			"expressions, including parameters declared in included files.\n\n" +
			"A source is known to includes by its path relative to the deepest\n" +
			"--include-dir containing it.",
		Example: `  # Report include resolution for a tree of sources
  svkit propagate -I rtl rtl/

  # Define macros and write the folded trees as MessagePack
  svkit propagate -I rtl -D WIDTH=8 -D DEBUG rtl/ -o out.msgpack --encoding msgpack`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runPropagate(cmd, args, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Defines, "define", "D", nil, "Define a macro as NAME or NAME=VALUE")
	cmd.Flags().StringSliceVarP(&opts.IncludeDirs, "include-dir", "I", nil, "Directories include names are relative to (default: current directory)")
	cmd.Flags().StringVarP(&opts.OutFile, "out", "o", "", "Write the export to this file")
	cmd.Flags().StringVar(&opts.Encoding, "encoding", "", "Export encoding: json, yaml, msgpack (default: from --out extension)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

func runPropagate(cmd *cobra.Command, args []string, opts *PropagateOptions) error {
	cc := NewCommandContext(cmd, opts.Format)

	paths, err := collectFiles(args)
	if err != nil {
		return err
	}
	includeDirs := opts.IncludeDirs
	if len(includeDirs) == 0 {
		includeDirs = []string{"."}
	}

	defines := make(map[string]string, len(cc.Cfg.Propagate.Defines)+len(opts.Defines))
	for name, value := range cc.Cfg.Propagate.Defines {
		defines[name] = value
	}
	for _, d := range opts.Defines {
		name, value := propagate.ParseDefine(d)
		if name == "" {
			return fmt.Errorf("invalid define %q", d)
		}
		defines[name] = value
	}

	batch := propagate.NewBatch(
		propagate.WithLogger(cc.Logger),
		propagate.WithJobs(cc.Cfg.Jobs),
		propagate.WithDefines(defines),
	)
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, err := batch.Add(unitName(path, includeDirs), string(src)); err != nil {
			return err
		}
	}

	runErr := batch.Run(cmd.Context())
	if runErr != nil && (errors.Is(runErr, propagate.ErrPhaseOrder) || cmd.Context().Err() != nil) {
		return runErr
	}

	export := batch.Export()
	if opts.OutFile != "" {
		if err := writeExport(opts.OutFile, opts.Encoding, export); err != nil {
			return err
		}
		cc.Logger.Info("wrote export", "file", opts.OutFile, "units", len(export.Units))
	}
	results := batch.Results()
	if err := renderPropagateResults(cc.Renderer, results, export); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	failed := 0
	for _, res := range results {
		if res.Failed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d units", ErrUnitsFailed, failed, len(results))
	}
	return nil
}

func writeExport(path, encoding string, export propagate.Export) (err error) {
	if encoding == "" {
		encoding = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if encoding == "mp" || encoding == "msgpack" {
			encoding = "msgpack"
		} else if encoding != "yaml" && encoding != "yml" {
			encoding = "json"
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return output.Encode(f, encoding, export)
}

func renderPropagateResults(r *output.Renderer, results []propagate.Result, export propagate.Export) error {
	if ok, err := r.Structured(export); ok {
		return err
	}

	rows := make([][]string, 0, len(results))
	failed, unresolved := 0, 0
	for _, res := range results {
		status := "ok"
		if res.Failed {
			status = "parse error"
			failed++
		}
		resolved := make([]string, 0, len(res.Resolved))
		for name := range res.Resolved {
			resolved = append(resolved, name)
		}
		sort.Strings(resolved)
		unresolved += len(res.Unresolved)
		rows = append(rows, []string{
			res.Name,
			status,
			strings.Join(resolved, ", "),
			strings.Join(res.Unresolved, ", "),
			strings.Join(res.Transitive, ", "),
		})
	}

	r.Header("Propagation run " + export.RunID)
	r.Table([]string{"Unit", "Status", "Resolved", "Unresolved", "Transitive"}, rows)
	r.Println("")

	for _, res := range results {
		if res.Err != nil {
			r.Warning(fmt.Sprintf("%s: %s", res.Name, firstLine(res.Err.Error())))
		}
	}
	for _, cycle := range export.Cycles {
		r.Warning("include cycle: " + strings.Join(cycle, " <-> "))
	}
	r.Printf("Summary: %d units, %d failed, %d unresolved includes, %d cycles\n",
		len(results), failed, unresolved, len(export.Cycles))
	return nil
}
