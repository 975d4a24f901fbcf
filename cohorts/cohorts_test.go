package cohorts_test

import (
	mapset "github.com/deckarep/golang-set/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kognitoai/cohort/cohorts"
	cohortsTest "github.com/kognitoai/cohort/cohorts/test"
	"github.com/kognitoai/cohort/filter"
	"github.com/kognitoai/cohort/records"
)

var _ = Describe("Cohorts", func() {
	Describe("Refresh", func() {
		pipeline := filter.NewPipeline(nil, filter.PolicyFailOpen)
		columns := records.Columns{"age": records.ColumnTypeNumber}
		master := []records.Record{
			{"patient_id": "1", "age": float64(25)},
			{"patient_id": "2", "age": float64(40)},
			{"patient_id": "3", "age": float64(55)},
		}

		It("Recomputes the membership from the master dataset", func() {
			c := cohorts.New("Adults Over 30", &filter.Group{
				Logic: filter.LogicAnd,
				Nodes: []filter.Node{
					filter.RuleNode(filter.Rule{Field: "age", Operator: filter.OperatorGt, Value: float64(30)}),
				},
			})

			c.Refresh(pipeline, master, columns, nil, records.NewResolver(nil))

			Expect(c.Count()).To(Equal(2))
			Expect(c.PatientIDs.Contains("2")).To(BeTrue())
			Expect(c.PatientIDs.Contains("3")).To(BeTrue())
		})

		It("Keeps the membership a subset of the master record set", func() {
			c := cohorts.New("Everyone", &filter.Group{Logic: filter.LogicAnd})
			c.Refresh(pipeline, master, columns, nil, records.NewResolver(nil))

			allIDs := mapset.NewSet[string]("1", "2", "3")
			Expect(c.PatientIDs.IsSubset(allIDs)).To(BeTrue())
		})

		It("Resolves cross-cohort rules through the sibling index", func() {
			seed := cohortsTest.RandomCohort("1", "2")
			derived := cohorts.New("Not In Seed", &filter.Group{
				Logic: filter.LogicAnd,
				Nodes: []filter.Node{
					filter.RuleNode(filter.Rule{Field: "any", Operator: filter.OperatorNotInCohort, Value: seed.ID}),
				},
			})

			index := cohorts.NewIndex([]*cohorts.Cohort{seed, derived})
			derived.Refresh(pipeline, master, columns, index, records.NewResolver(nil))

			Expect(derived.PatientIDs.ToSlice()).To(ConsistOf("3"))
		})
	})

	Describe("Index", func() {
		It("Reports membership for known cohorts", func() {
			c := cohortsTest.RandomCohort("p1")
			index := cohorts.NewIndex([]*cohorts.Cohort{c})

			member, ok := index.Contains(c.ID, "p1")
			Expect(ok).To(BeTrue())
			Expect(member).To(BeTrue())

			member, ok = index.Contains(c.ID, "p2")
			Expect(ok).To(BeTrue())
			Expect(member).To(BeFalse())
		})

		It("Signals unknown cohort ids", func() {
			index := cohorts.NewIndex(nil)
			_, ok := index.Contains("missing", "p1")
			Expect(ok).To(BeFalse())
		})
	})
})
