package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kognitoai/cohort/config"
	"github.com/kognitoai/cohort/filter"
)

var evaluateParams = struct {
	DatasetPath      string
	FilterPath       string
	MappingPath      string
	ExcludeDirtyData bool
}{}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <dataset> <filter>",
	Args:  cobra.ExactArgs(2),
	Short: "Evaluate a filter over a dataset",
	Long:  "The evaluate command applies a filter specification to a patient dataset and prints the matching patient ids in dataset order",
	RunE: func(cmd *cobra.Command, args []string) error {
		evaluateParams.DatasetPath = args[0]
		evaluateParams.FilterPath = args[1]
		return Run(evaluate)
	},
}

func evaluate(pipeline *filter.Pipeline, cfg *config.Config) error {
	ds, err := loadDataset(evaluateParams.DatasetPath)
	if err != nil {
		return err
	}
	group, err := loadFilter(evaluateParams.FilterPath)
	if err != nil {
		return err
	}
	resolver, err := loadMapping(evaluateParams.MappingPath)
	if err != nil {
		return err
	}

	ids := pipeline.MatchingIDs(ds.Records, filter.Params{
		Group:            group,
		Columns:          ds.Columns,
		Resolver:         resolver,
		ExcludeDirtyData: evaluateParams.ExcludeDirtyData || cfg.ExcludeDirtyData,
	})
	for _, id := range ids {
		fmt.Println(id)
	}
	fmt.Printf("%d of %d records matched\n", len(ids), len(ds.Records))
	return nil
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateParams.MappingPath, "mapping", "", "JSON file mapping logical column names to dataset columns")
	evaluateCmd.Flags().BoolVar(&evaluateParams.ExcludeDirtyData, "exclude-dirty", false, "Remove records with missing tracked fields before evaluation")

	rootCmd.AddCommand(evaluateCmd)
}
