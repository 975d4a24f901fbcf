package cohorts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx/v3"
)

const (
	ReportSheetNameSummary  = "Summary"
	ReportSheetNameOverlaps = "Overlaps"
	ReportSheetNameClusters = "Clusters"
)

// Report renders a cohort comparison as a screening workbook: a summary of
// every cohort, the pairwise overlap statistics, and the overlap clusters.
type Report struct {
	cohorts    []*Cohort
	comparison Comparison
	createdAt  time.Time
}

func NewReport(cohorts []*Cohort, comparison Comparison) Report {
	return Report{
		cohorts:    cohorts,
		comparison: comparison,
		createdAt:  time.Now(),
	}
}

func (r Report) Generate() (*xlsx.File, error) {
	report := xlsx.NewFile()

	components := []func(report *xlsx.File) error{
		r.addSummarySheet,
		r.addOverlapsSheet,
		r.addClustersSheet,
	}
	for _, fn := range components {
		if err := fn(report); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (r Report) addSummarySheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameSummary)
	if err != nil {
		return err
	}

	sh.AddRow().AddCell().SetValue("Cohort Screening Summary")
	sh.AddRow()

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Report Generated")
	currentRow.AddCell().SetValue(r.createdAt.Format(time.RFC3339))

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Master Patient Count")
	currentRow.AddCell().SetValue(r.masterCount())

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Total Unique Patients")
	currentRow.AddCell().SetValue(r.comparison.TotalUniquePatients)

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue("Common To All Cohorts")
	currentRow.AddCell().SetValue(r.comparison.CommonToAll)
	sh.AddRow()

	currentRow = sh.AddRow()
	currentRow.AddCell().SetValue(fmt.Sprintf("Cohorts (%v) ---", len(r.comparison.Cohorts)))
	currentRow.AddCell().SetValue("Patients ---")
	currentRow.AddCell().SetValue("Match Rate ---")
	currentRow.AddCell().SetValue("Filters ---")
	for _, summary := range r.comparison.Cohorts {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(summary.CohortName)
		currentRow.AddCell().SetValue(summary.PatientCount)
		currentRow.AddCell().SetValue(fmt.Sprintf("%.1f%%", summary.MatchRate))
		currentRow.AddCell().SetValue(summary.FilterCount)
	}

	return nil
}

func (r Report) addOverlapsSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameOverlaps)
	if err != nil {
		return err
	}

	names := r.namesByID()

	currentRow := sh.AddRow()
	currentRow.AddCell().SetValue("Cohort A ---")
	currentRow.AddCell().SetValue("Cohort B ---")
	currentRow.AddCell().SetValue("Overlap ---")
	currentRow.AddCell().SetValue("Overlap % ---")
	currentRow.AddCell().SetValue("Unique to A ---")
	currentRow.AddCell().SetValue("Unique to B ---")
	for _, overlap := range r.comparison.Overlaps {
		currentRow = sh.AddRow()
		currentRow.AddCell().SetValue(names[overlap.CohortIDs[0]])
		currentRow.AddCell().SetValue(names[overlap.CohortIDs[1]])
		currentRow.AddCell().SetValue(overlap.OverlapCount)
		currentRow.AddCell().SetValue(fmt.Sprintf("%.1f%%", overlap.OverlapPercentage))
		currentRow.AddCell().SetValue(overlap.UniqueToFirst)
		currentRow.AddCell().SetValue(overlap.UniqueToSecond)
	}

	return nil
}

func (r Report) addClustersSheet(report *xlsx.File) error {
	sh, err := report.AddSheet(ReportSheetNameClusters)
	if err != nil {
		return err
	}

	clusters, err := Clusters(r.cohorts)
	if err != nil {
		return err
	}

	names := r.namesByID()
	for i, cluster := range clusters {
		sh.AddRow().AddCell().SetValue(fmt.Sprintf("Cluster %d", i+1))
		for _, member := range cluster.Cohorts {
			overlapping := make([]string, 0, len(member.Overlaps))
			for id, count := range member.Overlaps {
				overlapping = append(overlapping, names[id]+" ("+strconv.Itoa(count)+")")
			}
			sort.Strings(overlapping)
			currentRow := sh.AddRow()
			currentRow.AddCell().SetValue(member.Cohort.Name)
			currentRow.AddCell().SetValue(strings.Join(overlapping, ", "))
		}
		sh.AddRow()
	}

	return nil
}

func (r Report) masterCount() int {
	if len(r.comparison.Cohorts) == 0 {
		return 0
	}
	return r.comparison.Cohorts[0].MasterPatientCount
}

func (r Report) namesByID() map[string]string {
	names := make(map[string]string, len(r.comparison.Cohorts))
	for _, summary := range r.comparison.Cohorts {
		names[summary.CohortID] = summary.CohortName
	}
	return names
}
