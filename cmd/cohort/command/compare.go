package command

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kognitoai/cohort/cohorts"
	"github.com/kognitoai/cohort/config"
	"github.com/kognitoai/cohort/filter"
)

var compareParams = struct {
	DatasetPath      string
	CohortSpecs      []string
	MappingPath      string
	ReportPath       string
	ExcludeDirtyData bool
}{}

var compareCmd = &cobra.Command{
	Use:   "compare <dataset>",
	Args:  cobra.ExactArgs(1),
	Short: "Compare cohorts derived from filter specifications",
	Long:  "The compare command evaluates several named filters as cohorts over the same dataset and prints the overlap statistics used for screening decisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		compareParams.DatasetPath = args[0]
		return Run(compare)
	},
}

func compare(pipeline *filter.Pipeline, cfg *config.Config, log *zap.SugaredLogger) error {
	if len(compareParams.CohortSpecs) == 0 {
		return fmt.Errorf("at least one --cohort name=filter.json is required")
	}

	ds, err := loadDataset(compareParams.DatasetPath)
	if err != nil {
		return err
	}

	resolver, err := loadMapping(compareParams.MappingPath)
	if err != nil {
		return err
	}

	list := make([]*cohorts.Cohort, 0, len(compareParams.CohortSpecs))
	for _, spec := range compareParams.CohortSpecs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid cohort spec %q, expected name=filter.json", spec)
		}
		group, err := loadFilter(path)
		if err != nil {
			return err
		}
		if compareParams.ExcludeDirtyData || cfg.ExcludeDirtyData {
			group.ExcludeDirtyData = true
		}
		list = append(list, cohorts.New(name, group))
	}

	// Refresh in declaration order so cross-cohort rules can reference
	// cohorts declared earlier.
	index := cohorts.NewIndex(list)
	for _, c := range list {
		c.Refresh(pipeline, ds.Records, ds.Columns, index, resolver)
		log.Debugw("cohort refreshed", "name", c.Name, "patients", c.Count())
	}

	result := cohorts.Compare(list, len(ds.Records))
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))

	if compareParams.ReportPath != "" {
		report, err := cohorts.NewReport(list, result).Generate()
		if err != nil {
			return err
		}
		if err := report.Save(compareParams.ReportPath); err != nil {
			return err
		}
		log.Infow("screening report written", "path", compareParams.ReportPath)
	}
	return nil
}

func init() {
	compareCmd.Flags().StringArrayVar(&compareParams.CohortSpecs, "cohort", nil, "Cohort as name=filter.json, may be repeated")
	compareCmd.Flags().StringVar(&compareParams.MappingPath, "mapping", "", "JSON file mapping logical column names to dataset columns")
	compareCmd.Flags().StringVar(&compareParams.ReportPath, "report", "", "Write an XLSX screening report to the given path")
	compareCmd.Flags().BoolVar(&compareParams.ExcludeDirtyData, "exclude-dirty", false, "Remove records with missing tracked fields before evaluation")

	rootCmd.AddCommand(compareCmd)
}
