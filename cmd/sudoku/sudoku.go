package sudoku

import (
	"fmt"
	"io"
	"math"

	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/constraint"
)

// CellID names the variable for the cell at row, col (zero-based).
func CellID(row, col int) csp.Identifier {
	return csp.Identifier(fmt.Sprintf("r%dc%d", row, col))
}

// NewBoard builds the constraint problem for an empty size x size
// sudoku board: one integer variable per cell ranging over 1..size, and
// all-different constraints over every row, column and box. Size must
// be a square number so the boxes tile the board.
func NewBoard(size int) (*csp.Problem, error) {
	box := int(math.Sqrt(float64(size)))
	if box*box != size {
		return nil, fmt.Errorf("board size must be a square number, got %d", size)
	}

	numbers := make([]int64, size)
	for i := range numbers {
		numbers[i] = int64(i + 1)
	}

	problem := csp.NewProblem(fmt.Sprintf("sudoku-%dx%d", size, size))
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			id := CellID(row, col)
			if err := problem.AddVariable(csp.NewVariable(id, string(id), csp.TypeInteger, csp.Ints(numbers...))); err != nil {
				return nil, err
			}
		}
	}

	// every row has unique numbers
	for row := 0; row < size; row++ {
		scope := make([]csp.Identifier, size)
		for col := 0; col < size; col++ {
			scope[col] = CellID(row, col)
		}
		if err := problem.AddConstraint(csp.NewConstraint(csp.Identifier(fmt.Sprintf("row-%d", row)), scope, constraint.AllDifferent())); err != nil {
			return nil, err
		}
	}

	// every column has unique numbers
	for col := 0; col < size; col++ {
		scope := make([]csp.Identifier, size)
		for row := 0; row < size; row++ {
			scope[row] = CellID(row, col)
		}
		if err := problem.AddConstraint(csp.NewConstraint(csp.Identifier(fmt.Sprintf("col-%d", col)), scope, constraint.AllDifferent())); err != nil {
			return nil, err
		}
	}

	// every box has unique numbers
	for x := 0; x < size; x += box {
		for y := 0; y < size; y += box {
			scope := make([]csp.Identifier, 0, size)
			for dx := 0; dx < box; dx++ {
				for dy := 0; dy < box; dy++ {
					scope = append(scope, CellID(x+dx, y+dy))
				}
			}
			if err := problem.AddConstraint(csp.NewConstraint(csp.Identifier(fmt.Sprintf("box-%d-%d", x/box, y/box)), scope, constraint.AllDifferent())); err != nil {
				return nil, err
			}
		}
	}

	return problem, nil
}

// Render writes the board row by row, leaving unbound cells blank.
func Render(w io.Writer, assignment csp.Assignment, size int) {
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if value, ok := assignment[CellID(row, col)]; ok {
				fmt.Fprintf(w, "%s", value)
			} else {
				fmt.Fprintf(w, " ")
			}
			if col != size-1 {
				fmt.Fprintf(w, " ")
			}
		}
		fmt.Fprintf(w, "\n")
	}
}
