package propagate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepthink-ai/csp/internal/problemfile"
	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/propagate"
	"github.com/deepthink-ai/csp/pkg/csp/render"
)

func NewPropagateCommand() *cobra.Command {
	var trace bool
	var graph bool
	var maxRevisions int

	cmd := &cobra.Command{
		Use:   "propagate <path>",
		Short: "Enforces arc consistency on a problem and reports the prunings",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], trace, graph, maxRevisions, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print every revision and every ignored constraint")
	cmd.Flags().BoolVar(&graph, "graph", false, "render the pruned constraint graph as a mermaid diagram")
	cmd.Flags().IntVar(&maxRevisions, "max-revisions", 0, "abort after this many pruning revisions (0 means unbounded)")
	return cmd
}

func run(ctx context.Context, path string, trace, graph bool, maxRevisions int, out io.Writer) error {
	problem, err := problemfile.Load(path)
	if err != nil {
		return err
	}

	propagateOptions := []propagate.Option{}
	if trace {
		propagateOptions = append(propagateOptions, propagate.WithTracer(propagate.LoggingTracer{Writer: out}))
	}
	if maxRevisions > 0 {
		propagateOptions = append(propagateOptions, propagate.WithMaxRevisions(maxRevisions))
	}
	p, err := propagate.New(propagateOptions...)
	if err != nil {
		return err
	}

	records, err := p.Apply(ctx, problem)
	if !trace {
		for _, record := range records {
			fmt.Fprintf(out, "%d: %s kept %s (was %s)\n",
				record.Step, record.Variable, formatValues(record.After), formatValues(record.Before))
		}
	}
	if err != nil {
		return fmt.Errorf("propagation aborted after %d revisions: %w", len(records), err)
	}

	if empty := propagate.EmptyDomains(problem); len(empty) > 0 {
		fmt.Fprintf(out, "no solution exists: propagation emptied %v\n", empty)
	} else {
		fmt.Fprintf(out, "arc consistent after %d revisions\n", len(records))
		for _, variable := range problem.Variables() {
			fmt.Fprintf(out, "%s in %s\n", variable.ID, formatValues(variable.Domain))
		}
	}

	if graph {
		fmt.Fprintln(out)
		return render.NewGraphRenderer().Render(out, problem)
	}
	return nil
}

func formatValues(values []csp.Value) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = value.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
