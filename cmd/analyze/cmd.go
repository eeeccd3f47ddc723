package analyze

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepthink-ai/csp/internal/problemfile"
	"github.com/deepthink-ai/csp/pkg/csp/analysis"
	"github.com/deepthink-ai/csp/pkg/csp/render"
)

func NewAnalyzeCommand() *cobra.Command {
	var graph bool
	var direction string

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Reports structural statistics for a constraint problem",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], graph, direction, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&graph, "graph", false, "render the constraint graph as a mermaid diagram")
	cmd.Flags().StringVar(&direction, "direction", "TD", "graph orientation (TD or LR)")
	return cmd
}

func run(path string, graph bool, direction string, out io.Writer) error {
	problem, err := problemfile.Load(path)
	if err != nil {
		return err
	}

	report := analysis.Analyze(problem)
	fmt.Fprintf(out, "problem: %s\n", report.Name)
	fmt.Fprintf(out, "variables: %d\n", report.VariableCount)
	fmt.Fprintf(out, "constraints: %d (%d hard, %d soft)\n", report.ConstraintCount, report.HardConstraints, report.SoftConstraints)
	fmt.Fprintf(out, "density: %.3f\n", report.Density)
	fmt.Fprintf(out, "estimated tightness: %.2f\n", report.Tightness)
	fmt.Fprintf(out, "search space: %s\n", report.ComplexityOrder)
	for _, variable := range problem.Variables() {
		fmt.Fprintf(out, "domain %s: %d\n", variable.ID, report.DomainSizes[variable.ID])
	}

	if graph {
		fmt.Fprintln(out)
		renderer := render.NewGraphRenderer()
		renderer.SetDirection(direction)
		return renderer.Render(out, problem)
	}
	return nil
}
