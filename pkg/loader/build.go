package loader

import (
	"github.com/NxtCent1/tvpstage/pkg/config"
	"github.com/NxtCent1/tvpstage/pkg/errors"
	"github.com/NxtCent1/tvpstage/pkg/sqltype"
	"github.com/NxtCent1/tvpstage/pkg/tvp"
)

// BuildTable constructs an empty staging table from a table configuration,
// declaring its columns in order with their initial precision and scale.
func BuildTable(cfg config.TableConfig) (*tvp.Table, error) {
	opts := []tvp.Option{tvp.WithName(cfg.Name)}
	if cfg.ExtendedTemporalTypes {
		opts = append(opts, tvp.WithExtendedTemporalTypes())
	}
	table := tvp.New(opts...)

	for _, col := range cfg.Columns {
		cat, err := sqltype.Parse(col.Type)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid column type").
				WithDetail("column", col.Name)
		}
		if _, err := table.AddColumnDescriptor(tvp.ColumnDescriptor{
			Name:      col.Name,
			Type:      cat,
			Precision: col.Precision,
			Scale:     col.Scale,
		}); err != nil {
			return nil, err
		}
	}
	return table, nil
}
