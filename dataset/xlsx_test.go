package dataset_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tealeg/xlsx/v3"

	"github.com/kognitoai/cohort/dataset"
	"github.com/kognitoai/cohort/records"
)

func buildWorkbook(rows [][]string) *xlsx.File {
	file := xlsx.NewFile()
	sh, err := file.AddSheet("Patients")
	Expect(err).ToNot(HaveOccurred())
	for _, values := range rows {
		row := sh.AddRow()
		for _, value := range values {
			row.AddCell().SetValue(value)
		}
	}
	return file
}

var _ = Describe("XLSX", func() {
	It("Materializes the first sheet", func() {
		file := buildWorkbook([][]string{
			{"patient_id", "age", "site"},
			{"p-1", "30", "General Hospital"},
			{"p-2", "45", "City Clinic"},
		})

		ds, err := dataset.LoadXLSX(file)
		Expect(err).ToNot(HaveOccurred())

		Expect(ds.Fields).To(Equal([]string{"patient_id", "age", "site"}))
		Expect(ds.Records).To(HaveLen(2))
		Expect(ds.Columns["age"]).To(Equal(records.ColumnTypeNumber))
		Expect(ds.Records[0]["age"]).To(Equal(float64(30)))
		Expect(ds.Records[1]["patient_id"]).To(Equal("p-2"))
	})

	It("Pads short rows with missing values", func() {
		file := buildWorkbook([][]string{
			{"patient_id", "age", "site"},
			{"p-1", "30"},
		})

		ds, err := dataset.LoadXLSX(file)
		Expect(err).ToNot(HaveOccurred())
		Expect(ds.Records[0]["site"]).To(BeNil())
	})

	It("Ignores trailing blank cells past the header", func() {
		file := buildWorkbook([][]string{
			{"patient_id", "age"},
			{"p-1", "30", "", ""},
		})

		ds, err := dataset.LoadXLSX(file)
		Expect(err).ToNot(HaveOccurred())
		Expect(ds.Records).To(HaveLen(1))
		Expect(ds.Records[0]).To(HaveLen(2))
	})

	It("Rejects rows with data past the header", func() {
		file := buildWorkbook([][]string{
			{"patient_id", "age"},
			{"p-1", "30", "stray"},
		})

		_, err := dataset.LoadXLSX(file)
		Expect(err).To(MatchError(dataset.ErrRaggedTable))
	})

	It("Rejects a workbook without sheets", func() {
		_, err := dataset.LoadXLSX(xlsx.NewFile())
		Expect(err).To(MatchError(dataset.ErrNoSheets))
	})

	It("Rejects a sheet without a header", func() {
		file := xlsx.NewFile()
		_, err := file.AddSheet("Empty")
		Expect(err).ToNot(HaveOccurred())

		_, err = dataset.LoadXLSX(file)
		Expect(err).To(MatchError(dataset.ErrNoHeader))
	})
})
