package solver

import (
	"fmt"
	"io"

	"github.com/deepthink-ai/csp/pkg/csp"
)

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ csp.SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(position csp.SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nstep: %d\n", position.Step())
	fmt.Fprintf(t.Writer, "branching on: %s\n", position.Candidate().ID)
	fmt.Fprintf(t.Writer, "bound: %s\n", position.Assignment())
}
