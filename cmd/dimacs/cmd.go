package dimacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-air/gini"
	"github.com/spf13/cobra"

	"github.com/deepthink-ai/csp/pkg/csp/solver"
)

func NewDimacsCommand() *cobra.Command {
	var verify bool
	var maxSteps int64

	cmd := &cobra.Command{
		Use:   "dimacs <path>",
		Short: "Solves a sat problem given in dimacs format",
		Long: `Solves a sat problem given in dimacs format. For instance:
c
c this is a comment
c header: p cnf <number of variables> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)

The instance is translated into a boolean constraint problem and solved
by backtracking search rather than a sat core.
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd.Context(), args[0], verify, maxSteps, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check the verdict against a sat core reading the same file")
	cmd.Flags().Int64Var(&maxSteps, "max-steps", 0, "abort after entering this many search nodes (0 means unbounded)")
	return cmd
}

func solve(ctx context.Context, path string, verify bool, maxSteps int64, out io.Writer) error {
	// open dimacs file
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	problem, err := GenerateProblem(dimacs)
	if err != nil {
		return err
	}

	s, err := solver.New(solver.WithStepBudget(maxSteps))
	if err != nil {
		return err
	}

	solution, err := s.Solve(ctx, problem)
	if err != nil {
		fmt.Fprintf(out, "no solution found: %s\n", err)
		return nil
	}

	if solution.Found {
		fmt.Fprintln(out, "solution found:")
		for _, variable := range problem.Variables() {
			fmt.Fprintf(out, "%s = %s\n", variable.ID, solution.Assignment[variable.ID])
		}
	} else {
		fmt.Fprintln(out, "unsatisfiable")
	}

	if verify {
		return verifyVerdict(path, solution.Found, out)
	}
	return nil
}

// verifyVerdict hands the untranslated file to a sat core and compares
// verdicts.
func verifyVerdict(path string, found bool, out io.Writer) error {
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	g, err := gini.NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("sat core rejected dimacs file (%s): %w", path, err)
	}
	satisfiable := g.Solve() == 1
	if satisfiable != found {
		return fmt.Errorf("verify failed: search says satisfiable=%t, sat core says satisfiable=%t", found, satisfiable)
	}
	fmt.Fprintln(out, "verify: sat core agrees")
	return nil
}
