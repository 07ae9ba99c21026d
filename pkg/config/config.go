// Package config provides YAML-based configuration for tvpstage: the shape
// of the staged table (columns, capability flags) and the bulk loader's
// behavior. Files support ${VAR} environment substitution.
package config

import (
	"fmt"

	"github.com/NxtCent1/tvpstage/pkg/sqltype"
)

// StagingConfig is the root configuration for staging a file into a TVP.
type StagingConfig struct {
	// Table describes the staged table's shape
	Table TableConfig `yaml:"table" json:"table"`
	// Loader controls bulk-load behavior
	Loader LoaderConfig `yaml:"loader" json:"loader"`
	// Logging configures the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TableConfig declares the staged table and its columns.
type TableConfig struct {
	// Name is the server-side type name used in CREATE TYPE
	Name string `yaml:"name" json:"name"`
	// ExtendedTemporalTypes enables timezone-qualified temporal columns
	ExtendedTemporalTypes bool `yaml:"extended_temporal_types" json:"extended_temporal_types"`
	// Columns in declaration order
	Columns []ColumnConfig `yaml:"columns" json:"columns"`
}

// ColumnConfig declares one column.
type ColumnConfig struct {
	// Name is the column name, unique case-insensitively
	Name string `yaml:"name" json:"name"`
	// Type is the SQL type name (bigint, decimal, nvarchar, ...)
	Type string `yaml:"type" json:"type"`
	// Precision is the initial precision; it may still widen while staging
	Precision int `yaml:"precision,omitempty" json:"precision,omitempty"`
	// Scale is the initial scale; it may still widen while staging
	Scale int `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// LoaderConfig controls how the CSV loader reads input.
type LoaderConfig struct {
	// Delimiter is the field separator (default ",")
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// Comment, when set, marks lines to skip (e.g. "#")
	Comment string `yaml:"comment,omitempty" json:"comment,omitempty"`
	// HasHeader skips the first record
	HasHeader bool `yaml:"has_header" json:"has_header"`
	// NullToken is the field text treated as NULL, besides the empty string
	NullToken string `yaml:"null_token,omitempty" json:"null_token,omitempty"`
	// MaxRows caps the number of staged rows; 0 means no limit
	MaxRows int `yaml:"max_rows,omitempty" json:"max_rows,omitempty"`
	// OnError is "abort" (default) or "skip"
	OnError string `yaml:"on_error,omitempty" json:"on_error,omitempty"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Encoding string `yaml:"encoding" json:"encoding"`
}

// Error policies for LoaderConfig.OnError.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// DefaultLoaderConfig returns the loader defaults: comma-delimited input
// with a header row, aborting on the first bad row.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Delimiter: ",",
		HasHeader: true,
		OnError:   OnErrorAbort,
	}
}

// Validate checks the configuration for problems the staging layer would
// otherwise only surface mid-load.
func (c *StagingConfig) Validate() error {
	if len(c.Table.Columns) == 0 {
		return fmt.Errorf("table %q declares no columns", c.Table.Name)
	}
	for _, col := range c.Table.Columns {
		if col.Name == "" {
			return fmt.Errorf("table %q has a column with no name", c.Table.Name)
		}
		cat, err := sqltype.Parse(col.Type)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.Name, err)
		}
		if cat.Zoned() && !c.Table.ExtendedTemporalTypes {
			return fmt.Errorf("column %q uses %s but extended_temporal_types is not enabled", col.Name, cat)
		}
		if col.Precision < 0 || col.Scale < 0 {
			return fmt.Errorf("column %q: precision and scale must be non-negative", col.Name)
		}
	}
	if len(c.Loader.Delimiter) > 1 {
		return fmt.Errorf("loader delimiter must be a single character, got %q", c.Loader.Delimiter)
	}
	switch c.Loader.OnError {
	case "", OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("loader on_error must be %q or %q, got %q", OnErrorAbort, OnErrorSkip, c.Loader.OnError)
	}
	return nil
}
