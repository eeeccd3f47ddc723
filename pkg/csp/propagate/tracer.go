package propagate

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// Tracer observes a propagation run: every revision that pruned a
// domain and every constraint excluded from the worklist.
type Tracer interface {
	TraceRevision(record csp.Propagation)
	TraceIgnored(constraint *csp.Constraint, why string)
}

type DefaultTracer struct{}

func (DefaultTracer) TraceRevision(_ csp.Propagation) {
}

func (DefaultTracer) TraceIgnored(_ *csp.Constraint, _ string) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) TraceRevision(record csp.Propagation) {
	fmt.Fprintf(t.Writer, "---\nstep: %d\nvariable: %s\nneighbor: %s\n", record.Step, record.Variable, record.Neighbor)
	fmt.Fprintf(t.Writer, "before: %s\n", formatDomain(record.Before))
	fmt.Fprintf(t.Writer, "after: %s\n", formatDomain(record.After))
	fmt.Fprintf(t.Writer, "reason: %s\n", record.Reason)
}

func (t LoggingTracer) TraceIgnored(constraint *csp.Constraint, why string) {
	fmt.Fprintf(t.Writer, "ignoring %s (%s): %s\n", constraint.ID, constraint, why)
}

func formatDomain(domain []csp.Value) string {
	values := make([]string, len(domain))
	for i, value := range domain {
		values[i] = value.String()
	}
	return "[" + strings.Join(values, ", ") + "]"
}
