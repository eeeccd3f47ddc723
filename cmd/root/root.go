package root

import (
	"github.com/spf13/cobra"

	"github.com/deepthink-ai/csp/cmd/analyze"
	"github.com/deepthink-ai/csp/cmd/dimacs"
	"github.com/deepthink-ai/csp/cmd/propagate"
	"github.com/deepthink-ai/csp/cmd/solve"
	"github.com/deepthink-ai/csp/cmd/sudoku"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csp",
		Short: "csp is an open-source constraint satisfaction engine",
		Long: `An open-source constraint satisfaction engine written in Go.
For more information visit https://github.com/deepthink-ai/csp`,
	}

	// add sub-commands
	rootCmd.AddCommand(solve.NewSolveCommand())
	rootCmd.AddCommand(analyze.NewAnalyzeCommand())
	rootCmd.AddCommand(propagate.NewPropagateCommand())
	rootCmd.AddCommand(sudoku.NewSudokuCommand())
	rootCmd.AddCommand(dimacs.NewDimacsCommand())

	return rootCmd
}
