package dimacs_test

import (
	"bytes"
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/deepthink-ai/csp/cmd/dimacs"
	"github.com/deepthink-ai/csp/pkg/csp"
	"github.com/deepthink-ai/csp/pkg/csp/ordering"
	"github.com/deepthink-ai/csp/pkg/csp/solver"
)

func TestDimacs(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dimacs Suite")
}

var _ = Describe("Dimacs", func() {
	It("should fail if there is no header", func() {
		problem := "1 2 3 0\n"
		_, err := dimacs.NewDimacs(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})
	It("should fail if there are no clauses", func() {
		problem := "p cnf 3 3\n"
		_, err := dimacs.NewDimacs(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})
	It("should fail on literals outside the declared range", func() {
		problem := "p cnf 2 1\n1 3 0\n"
		_, err := dimacs.NewDimacs(bytes.NewReader([]byte(problem)))
		Expect(err).To(HaveOccurred())
	})
	It("should parse valid dimacs", func() {
		problem := "p cnf 3 1\n1 2 3 0\n"
		d, err := dimacs.NewDimacs(bytes.NewReader([]byte(problem)))
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Variables()).To(Equal([]string{"1", "2", "3"}))
		Expect(d.Clauses()).To(Equal([][]int{{1, 2, 3}}))
	})
})

var _ = Describe("Dimacs Problem", func() {
	It("should create a boolean problem for a dimacs instance", func() {
		instance := "p cnf 3 1\n1 -2 3 0\n"
		d, err := dimacs.NewDimacs(bytes.NewReader([]byte(instance)))
		Expect(err).ToNot(HaveOccurred())

		problem, err := dimacs.GenerateProblem(d)
		Expect(err).ToNot(HaveOccurred())
		Expect(problem.VariableCount()).To(Equal(3))
		Expect(problem.ConstraintCount()).To(Equal(1))

		one, ok := problem.Variable("1")
		Expect(ok).To(BeTrue())
		Expect(one.Type).To(Equal(csp.TypeBoolean))
		Expect(one.Domain).To(Equal(csp.Bools(true, false)))

		clause, ok := problem.Constraint("clause-1")
		Expect(ok).To(BeTrue())
		Expect(clause.Variables).To(Equal([]csp.Identifier{"1", "2", "3"}))
		Expect(clause.String()).To(Equal("clause(1 -2 3)"))
	})
	It("should satisfy clauses through negative literals", func() {
		instance := "p cnf 2 2\n1 2 0\n1 -2 0\n"
		d, err := dimacs.NewDimacs(bytes.NewReader([]byte(instance)))
		Expect(err).ToNot(HaveOccurred())

		problem, err := dimacs.GenerateProblem(d)
		Expect(err).ToNot(HaveOccurred())

		clause, ok := problem.Constraint("clause-2")
		Expect(ok).To(BeTrue())
		holds, err := clause.Relation.Holds([]csp.Value{csp.Boolean(false), csp.Boolean(false)})
		Expect(err).To(BeNil())
		Expect(holds).To(BeTrue())

		holds, err = clause.Relation.Holds([]csp.Value{csp.Boolean(false), csp.Boolean(true)})
		Expect(err).To(BeNil())
		Expect(holds).To(BeFalse())
	})
	It("should solve a satisfiable instance", func() {
		instance := "p cnf 2 2\n1 2 0\n1 -2 0\n"
		d, err := dimacs.NewDimacs(bytes.NewReader([]byte(instance)))
		Expect(err).ToNot(HaveOccurred())

		problem, err := dimacs.GenerateProblem(d)
		Expect(err).ToNot(HaveOccurred())

		solution, err := solver.Solve(context.Background(), problem, ordering.VariableDefault, ordering.ValueNatural)
		Expect(err).To(BeNil())
		Expect(solution.Found).To(BeTrue())

		ok, err := csp.IsConsistent(problem, solution.Assignment)
		Expect(err).To(BeNil())
		Expect(ok).To(BeTrue())
	})
	It("should prove a contradiction unsatisfiable", func() {
		instance := "p cnf 1 2\n1 0\n-1 0\n"
		d, err := dimacs.NewDimacs(bytes.NewReader([]byte(instance)))
		Expect(err).ToNot(HaveOccurred())

		problem, err := dimacs.GenerateProblem(d)
		Expect(err).ToNot(HaveOccurred())

		solution, err := solver.Solve(context.Background(), problem, ordering.VariableDefault, ordering.ValueNatural)
		Expect(err).To(BeNil())
		Expect(solution.Found).To(BeFalse())
	})
})
