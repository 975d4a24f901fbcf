package cohorts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kognitoai/cohort/cohorts"
	cohortsTest "github.com/kognitoai/cohort/cohorts/test"
)

var _ = Describe("Report", func() {
	It("Generates summary, overlaps and clusters sheets", func() {
		a := cohortsTest.RandomCohort("1", "2")
		b := cohortsTest.RandomCohort("2", "3")
		list := []*cohorts.Cohort{a, b}
		comparison := cohorts.Compare(list, 3)

		report, err := cohorts.NewReport(list, comparison).Generate()
		Expect(err).ToNot(HaveOccurred())

		Expect(report.Sheets).To(HaveLen(3))
		Expect(report.Sheet).To(HaveKey(cohorts.ReportSheetNameSummary))
		Expect(report.Sheet).To(HaveKey(cohorts.ReportSheetNameOverlaps))
		Expect(report.Sheet).To(HaveKey(cohorts.ReportSheetNameClusters))
	})

	It("Lists every cohort on the summary sheet", func() {
		a := cohortsTest.RandomCohort("1")
		b := cohortsTest.RandomCohort("2")
		list := []*cohorts.Cohort{a, b}

		report, err := cohorts.NewReport(list, cohorts.Compare(list, 2)).Generate()
		Expect(err).ToNot(HaveOccurred())

		sh := report.Sheet[cohorts.ReportSheetNameSummary]

		// The cohort table starts after the header block.
		first, err := sh.Cell(8, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(first.String()).To(Equal(a.Name))

		second, err := sh.Cell(9, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(second.String()).To(Equal(b.Name))
	})

	It("Reports pairwise overlap rows", func() {
		a := cohortsTest.RandomCohort("1", "2")
		b := cohortsTest.RandomCohort("2")
		list := []*cohorts.Cohort{a, b}

		report, err := cohorts.NewReport(list, cohorts.Compare(list, 2)).Generate()
		Expect(err).ToNot(HaveOccurred())

		sh := report.Sheet[cohorts.ReportSheetNameOverlaps]
		overlapCell, err := sh.Cell(1, 2)
		Expect(err).ToNot(HaveOccurred())
		Expect(overlapCell.String()).To(Equal("1"))
	})
})
