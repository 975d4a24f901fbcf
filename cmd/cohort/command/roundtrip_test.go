package command

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/kognitoai/cohort/cohorts"
	"github.com/kognitoai/cohort/config"
	"github.com/kognitoai/cohort/filter"
)

func captureStdout(fn func() error) (string, error) {
	original := os.Stdout
	r, w, err := os.Pipe()
	Expect(err).ToNot(HaveOccurred())
	os.Stdout = w

	runErr := fn()

	Expect(w.Close()).To(Succeed())
	os.Stdout = original
	out, err := io.ReadAll(r)
	Expect(err).ToNot(HaveOccurred())
	return string(out), runErr
}

var _ = Describe("Commands", func() {
	var dir string
	var pipeline *filter.Pipeline
	var cfg *config.Config

	masterCSV := strings.Join([]string{
		"patient_id,age,diagnosis",
		"1,30,DLBCL",
		"2,45,FL",
		"3,60,DLBCL",
		"",
	}, "\n")

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		pipeline = filter.NewPipeline(nil, filter.PolicyFailOpen)
		cfg = config.New()
	})

	Describe("evaluate", func() {
		BeforeEach(func() {
			evaluateParams.DatasetPath = ""
			evaluateParams.FilterPath = ""
			evaluateParams.MappingPath = ""
			evaluateParams.ExcludeDirtyData = false
		})

		It("Prints the matching patient ids in dataset order", func() {
			evaluateParams.DatasetPath = writeFile("patients.csv", masterCSV)
			evaluateParams.FilterPath = writeFile("filter.json", `{
				"logic": "AND",
				"rules": [{"field": "age", "operator": "gt", "value": 40}]
			}`)

			out, err := captureStdout(func() error { return evaluate(pipeline, cfg) })
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal("2\n3\n2 of 3 records matched\n"))
		})

		It("Resolves filter fields through the column mapping", func() {
			evaluateParams.DatasetPath = writeFile("patients.csv", strings.Join([]string{
				"patient_id,Age (years)",
				"1,30",
				"2,45",
				"",
			}, "\n"))
			evaluateParams.FilterPath = writeFile("filter.json", `{
				"logic": "AND",
				"rules": [{"field": "age", "operator": "gt", "value": 40}]
			}`)
			evaluateParams.MappingPath = writeFile("mapping.json", `{"age": "Age (years)"}`)

			out, err := captureStdout(func() error { return evaluate(pipeline, cfg) })
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(HavePrefix("2\n"))
		})

		It("Surfaces missing dataset files", func() {
			evaluateParams.DatasetPath = filepath.Join(dir, "missing.csv")
			evaluateParams.FilterPath = writeFile("filter.json", `{"logic": "AND", "rules": []}`)

			_, err := captureStdout(func() error { return evaluate(pipeline, cfg) })
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("compare", func() {
		log := zap.NewNop().Sugar()

		BeforeEach(func() {
			compareParams.DatasetPath = ""
			compareParams.CohortSpecs = nil
			compareParams.MappingPath = ""
			compareParams.ReportPath = ""
			compareParams.ExcludeDirtyData = false
		})

		It("Prints the comparison of the named cohorts", func() {
			compareParams.DatasetPath = writeFile("patients.csv", masterCSV)
			over40 := writeFile("over40.json", `{
				"logic": "AND",
				"rules": [{"field": "age", "operator": "gt", "value": 40}]
			}`)
			dlbcl := writeFile("dlbcl.json", `{
				"logic": "AND",
				"rules": [{"field": "diagnosis", "operator": "equals", "value": "DLBCL"}]
			}`)
			compareParams.CohortSpecs = []string{"Over 40=" + over40, "DLBCL=" + dlbcl}

			out, err := captureStdout(func() error { return compare(pipeline, cfg, log) })
			Expect(err).ToNot(HaveOccurred())

			result := cohorts.Comparison{}
			Expect(json.Unmarshal([]byte(out), &result)).To(Succeed())

			Expect(result.Cohorts).To(HaveLen(2))
			Expect(result.Cohorts[0].CohortName).To(Equal("Over 40"))
			Expect(result.Cohorts[0].PatientCount).To(Equal(2))
			Expect(result.Cohorts[1].PatientCount).To(Equal(2))

			// Over 40 = {2,3}, DLBCL = {1,3}
			Expect(result.Overlaps).To(HaveLen(1))
			Expect(result.Overlaps[0].OverlapCount).To(Equal(1))
			Expect(result.TotalUniquePatients).To(Equal(3))
		})

		It("Writes the screening report when requested", func() {
			compareParams.DatasetPath = writeFile("patients.csv", masterCSV)
			everyone := writeFile("everyone.json", `{"logic": "AND", "rules": []}`)
			compareParams.CohortSpecs = []string{"Everyone=" + everyone}
			compareParams.ReportPath = filepath.Join(dir, "report.xlsx")

			_, err := captureStdout(func() error { return compare(pipeline, cfg, log) })
			Expect(err).ToNot(HaveOccurred())
			Expect(compareParams.ReportPath).To(BeAnExistingFile())
		})

		It("Rejects cohort specs without a name", func() {
			compareParams.DatasetPath = writeFile("patients.csv", masterCSV)
			compareParams.CohortSpecs = []string{"no-separator.json"}

			_, err := captureStdout(func() error { return compare(pipeline, cfg, log) })
			Expect(err).To(MatchError(ContainSubstring("invalid cohort spec")))
		})

		It("Requires at least one cohort", func() {
			_, err := captureStdout(func() error { return compare(pipeline, cfg, log) })
			Expect(err).To(MatchError(ContainSubstring("at least one --cohort")))
		})
	})
})
