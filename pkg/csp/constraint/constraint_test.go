package constraint_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/deepthink-ai/csp/pkg/csp/constraint"

	"github.com/deepthink-ai/csp/pkg/csp"
)

func TestPkg(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Constraint Suite")
}

var _ = Describe("Relations", func() {
	Describe("Equal", func() {
		It("holds when every value agrees", func() {
			holds, err := constraint.Equal().Holds(csp.Ints(2, 2, 2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("treats integers and reals numerically", func() {
			holds, err := constraint.Equal().Holds([]csp.Value{csp.Integer(2), csp.Real(2.0)})
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("fails on the first disagreement", func() {
			holds, err := constraint.Equal().Holds(csp.Ints(2, 3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())
		})

		It("renders its scope", func() {
			Expect(constraint.Equal().String([]csp.Identifier{"x1", "x2"})).To(Equal("x1 = x2"))
		})
	})

	Describe("NotEqual", func() {
		It("requires pairwise distinct values", func() {
			holds, err := constraint.NotEqual().Holds(csp.Ints(1, 2, 1))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())

			holds, err = constraint.NotEqual().Holds(csp.Ints(1, 2, 3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})
	})

	Describe("Ordering", func() {
		It("chains the comparison across the scope", func() {
			holds, err := constraint.LessThan().Holds(csp.Ints(1, 2, 3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())

			holds, err = constraint.LessThan().Holds(csp.Ints(1, 3, 2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())
		})

		It("accepts ties only for the inclusive ops", func() {
			holds, err := constraint.LessOrEqual().Holds(csp.Ints(2, 2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())

			holds, err = constraint.LessThan().Holds(csp.Ints(2, 2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())
		})

		It("orders categories lexically", func() {
			holds, err := constraint.GreaterThan().Holds(csp.Categories("pear", "apple"))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("rejects unordered kinds", func() {
			_, err := constraint.LessThan().Holds(csp.Bools(false, true))
			Expect(err).To(HaveOccurred())
		})

		It("renders the chain", func() {
			Expect(constraint.LessThan().String([]csp.Identifier{"x", "y"})).To(Equal("x < y"))
		})
	})

	Describe("MemberOf", func() {
		It("accepts only members of the allowed collection", func() {
			relation := constraint.MemberOf(csp.Ints(1, 2)...)

			holds, err := relation.Holds(csp.Ints(2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())

			holds, err = relation.Holds(csp.Ints(3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())
		})
	})

	Describe("AllDifferent", func() {
		It("requires pairwise distinct values", func() {
			holds, err := constraint.AllDifferent().Holds(csp.Categories("red", "green", "red"))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeFalse())
		})

		It("renders its scope", func() {
			Expect(constraint.AllDifferent().String([]csp.Identifier{"a", "b"})).To(Equal("all_different(a, b)"))
		})
	})

	Describe("LinearSum", func() {
		It("weights values by the given coefficients", func() {
			relation := constraint.LinearSum([]float64{2, 1}, 7)
			holds, err := relation.Holds(csp.Ints(2, 3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("defaults every coefficient to one", func() {
			holds, err := constraint.Sum(6).Holds(csp.Ints(1, 2, 3))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("tolerates floating point drift", func() {
			holds, err := constraint.Sum(0.3).Holds(csp.Reals(0.1, 0.2))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())
		})

		It("rejects a coefficient count that differs from the scope", func() {
			_, err := constraint.LinearSum([]float64{1}, 3).Holds(csp.Ints(1, 2))
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-numeric values", func() {
			_, err := constraint.Sum(1).Holds(csp.Categories("red"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Predicate", func() {
		It("delegates to the callback", func() {
			relation := constraint.Predicate("x is even", func(values []csp.Value) (bool, error) {
				return values[0].(csp.Integer)%2 == 0, nil
			})

			holds, err := relation.Holds(csp.Ints(4))
			Expect(err).ToNot(HaveOccurred())
			Expect(holds).To(BeTrue())

			Expect(relation.String([]csp.Identifier{"x"})).To(Equal("x is even"))
		})

		It("propagates callback errors", func() {
			boom := errors.New("boom")
			relation := constraint.Predicate("", func([]csp.Value) (bool, error) {
				return false, boom
			})

			_, err := relation.Holds(csp.Ints(1))
			Expect(err).To(MatchError(boom))
		})

		It("rejects a nil callback", func() {
			_, err := constraint.Predicate("", nil).Holds(csp.Ints(1))
			Expect(err).To(HaveOccurred())
		})
	})
})
