package sudoku

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deepthink-ai/csp/pkg/csp/ordering"
	"github.com/deepthink-ai/csp/pkg/csp/solver"
)

func NewSudokuCommand() *cobra.Command {
	var size int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "Returns a solved sudoku board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd.Context(), size, seed, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&size, "size", 9, "board edge length (a square number such as 4 or 9)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for board randomization (0 seeds from the clock)")
	return cmd
}

func solve(ctx context.Context, size int, seed int64, out io.Writer) error {
	board, err := NewBoard(size)
	if err != nil {
		return err
	}

	// randomize value order to create new sudoku boards every run
	options := []solver.Option{
		solver.WithVariableStrategy(ordering.VariableMinRemainingValues),
		solver.WithValueStrategy(ordering.ValueRandom),
	}
	if seed != 0 {
		options = append(options, solver.WithSeed(seed))
	}
	s, err := solver.New(options...)
	if err != nil {
		return err
	}

	solution, err := s.Solve(ctx, board)
	if err != nil || !solution.Found {
		fmt.Fprintln(out, "no solution found")
		return err
	}

	Render(out, solution.Assignment, size)
	return nil
}
