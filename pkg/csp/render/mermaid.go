// Package render draws problems as Mermaid diagrams for docs and
// terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/deepthink-ai/csp/pkg/csp"
)

// GraphRenderer renders the constraint graph of a problem as a Mermaid
// flowchart. Variables become nodes and binary constraints become
// labeled edges between their participants. Unary and higher-arity
// constraints are drawn as their own nodes linked to every variable in
// scope. Soft constraints use dotted links annotated with their weight.
type GraphRenderer struct {
	direction string // TD (top-down) or LR (left-right)
}

// NewGraphRenderer creates a renderer with top-down orientation.
func NewGraphRenderer() *GraphRenderer {
	return &GraphRenderer{direction: "TD"}
}

// SetDirection sets the graph direction (TD or LR).
func (r *GraphRenderer) SetDirection(dir string) {
	if dir == "LR" || dir == "TD" {
		r.direction = dir
	}
}

// Render writes the Mermaid diagram for the problem to w.
func (r *GraphRenderer) Render(w io.Writer, problem *csp.Problem) error {
	if _, err := fmt.Fprintln(w, "```mermaid"); err != nil {
		return err
	}
	fmt.Fprintf(w, "graph %s\n", r.direction)
	fmt.Fprintf(w, "    %%%% %s: %d variables, %d constraints\n",
		problem.Name, problem.VariableCount(), problem.ConstraintCount())

	for _, v := range problem.Variables() {
		fmt.Fprintf(w, "    %s[\"%s\"]\n", variableNode(v.ID), nodeLabel(v))
	}

	for _, c := range problem.Constraints() {
		r.writeConstraint(w, c)
	}

	_, err := fmt.Fprintln(w, "```")
	return err
}

// writeConstraint draws one constraint. Exactly-binary constraints
// collapse into an edge; everything else gets a constraint node.
func (r *GraphRenderer) writeConstraint(w io.Writer, c *csp.Constraint) {
	label := edgeLabel(c)
	if len(c.Variables) == 2 && c.Variables[0] != c.Variables[1] {
		fmt.Fprintf(w, "    %s %s|\"%s\"| %s\n",
			variableNode(c.Variables[0]), link(c), label, variableNode(c.Variables[1]))
		return
	}

	fmt.Fprintf(w, "    %s([\"%s\"])\n", constraintNode(c.ID), label)
	for _, id := range uniqueScope(c.Variables) {
		fmt.Fprintf(w, "    %s %s %s\n", constraintNode(c.ID), link(c), variableNode(id))
	}
}

// Mermaid renders the problem with default settings.
func Mermaid(problem *csp.Problem) string {
	var sb strings.Builder
	_ = NewGraphRenderer().Render(&sb, problem)
	return sb.String()
}

func link(c *csp.Constraint) string {
	if c.Hard() {
		return "---"
	}
	return "-.-"
}

func edgeLabel(c *csp.Constraint) string {
	label := c.String()
	if !c.Hard() {
		label = fmt.Sprintf("%s (weight %.2g)", label, c.Weight)
	}
	return escapeLabel(label)
}

func nodeLabel(v *csp.Variable) string {
	return escapeLabel(fmt.Sprintf("%s (%d)", v.Name, len(v.Domain)))
}

// variableNode and constraintNode prefix ids so that reserved Mermaid
// words such as "end" stay valid node names.
func variableNode(id csp.Identifier) string {
	return "v_" + sanitizeID(string(id))
}

func constraintNode(id csp.Identifier) string {
	return "c_" + sanitizeID(string(id))
}

func uniqueScope(ids []csp.Identifier) []csp.Identifier {
	seen := make(map[csp.Identifier]struct{}, len(ids))
	unique := make([]csp.Identifier, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// sanitizeID makes an identifier safe for Mermaid.
func sanitizeID(id string) string {
	replacer := strings.NewReplacer(
		".", "_",
		"/", "_",
		"-", "_",
		":", "_",
		"*", "_",
		" ", "_",
		"(", "_",
		")", "_",
	)
	return replacer.Replace(id)
}

func escapeLabel(label string) string {
	return strings.NewReplacer("\"", "#quot;", "<", "#lt;", ">", "#gt;").Replace(label)
}
