package command

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kognitoai/cohort/dataset"
	"github.com/kognitoai/cohort/filter"
	"github.com/kognitoai/cohort/records"
)

func loadDataset(path string) (*dataset.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.LoadCSVFile(path)
	case ".xlsx":
		return dataset.LoadXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

func loadFilter(path string) (*filter.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	group := filter.Group{}
	if err := json.Unmarshal(data, &group); err != nil {
		return nil, fmt.Errorf("error parsing filter %s: %w", path, err)
	}
	return &group, nil
}

func loadMapping(path string) (records.Resolver, error) {
	if path == "" {
		return records.NewResolver(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return records.Resolver{}, err
	}
	mapping := records.Mapping{}
	if err := json.Unmarshal(data, &mapping); err != nil {
		return records.Resolver{}, fmt.Errorf("error parsing column mapping %s: %w", path, err)
	}
	return records.NewResolver(mapping), nil
}
