package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NxtCent1/tvpstage/pkg/config"
	"github.com/NxtCent1/tvpstage/pkg/errors"
	"github.com/NxtCent1/tvpstage/pkg/testutil"
	"github.com/NxtCent1/tvpstage/pkg/tvp"
)

func itemListConfig() config.TableConfig {
	return config.TableConfig{
		Name: "dbo.ItemList",
		Columns: []config.ColumnConfig{
			{Name: "id", Type: "int"},
			{Name: "name", Type: "nvarchar"},
			{Name: "amount", Type: "decimal"},
		},
	}
}

func TestBuildTableDeclaresColumnsInOrder(t *testing.T) {
	table, err := BuildTable(itemListConfig())
	require.NoError(t, err)

	meta := table.ColumnMetadata()
	require.Len(t, meta, 3)
	assert.Equal(t, "id", meta[0].Name)
	assert.Equal(t, "name", meta[1].Name)
	assert.Equal(t, "amount", meta[2].Name)
	assert.Equal(t, "dbo.ItemList", table.Name())
}

func TestBuildTableRejectsBadType(t *testing.T) {
	_, err := BuildTable(config.TableConfig{
		Columns: []config.ColumnConfig{{Name: "g", Type: "geography"}},
	})
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestBuildTablePreservesInitialWidth(t *testing.T) {
	table, err := BuildTable(config.TableConfig{
		Columns: []config.ColumnConfig{
			{Name: "amt", Type: "numeric", Precision: 12, Scale: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 12, table.ColumnMetadata()[0].Precision)
	assert.Equal(t, 2, table.ColumnMetadata()[0].Scale)
}

func stage(t *testing.T, cfg config.LoaderConfig, input string) (*tvp.Table, *Result, error) {
	t.Helper()
	table, err := BuildTable(itemListConfig())
	require.NoError(t, err)

	l := NewCSVLoader(cfg, testutil.TestLogger(t))
	result, err := l.Load(context.Background(), strings.NewReader(input), table)
	return table, result, err
}

func TestLoadStagesRowsAndWidensMetadata(t *testing.T) {
	input := "id,name,amount\n" +
		"1,widget,12.345\n" +
		"2,gadget,1.2\n"

	cfg := config.LoaderConfig{Delimiter: ",", HasHeader: true}
	table, result, err := stage(t, cfg, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsStaged)
	assert.Equal(t, 0, result.RowsSkipped)
	assert.Equal(t, 2, table.RowCount())

	meta := table.ColumnMetadata()
	assert.Equal(t, 12, meta[1].Precision) // "widget" = 6 chars * 2
	assert.Equal(t, 5, meta[2].Precision)
	assert.Equal(t, 3, meta[2].Scale)
}

func TestLoadTreatsEmptyAndNullTokenAsNull(t *testing.T) {
	input := "1,,NULL\n"

	cfg := config.LoaderConfig{Delimiter: ",", NullToken: "NULL"}
	table, _, err := stage(t, cfg, input)
	require.NoError(t, err)

	it := table.Iterator()
	require.True(t, it.Next())
	row := it.Row()
	assert.Nil(t, row[1])
	assert.Nil(t, row[2])
}

func TestLoadShortRecordIsNullPadded(t *testing.T) {
	cfg := config.LoaderConfig{Delimiter: ","}
	table, _, err := stage(t, cfg, "7\n")
	require.NoError(t, err)

	it := table.Iterator()
	require.True(t, it.Next())
	row := it.Row()
	require.Len(t, row, 3)
	assert.Equal(t, int32(7), row[0])
	assert.Nil(t, row[1])
}

func TestLoadAbortsOnBadRowByDefault(t *testing.T) {
	input := "1,ok,1.5\nbogus,bad,2.5\n3,late,3.5\n"

	cfg := config.LoaderConfig{Delimiter: ","}
	table, result, err := stage(t, cfg, input)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	assert.Equal(t, 1, result.RowsStaged)
	assert.Equal(t, 1, table.RowCount())
}

func TestLoadSkipPolicyDropsBadRows(t *testing.T) {
	input := "1,ok,1.5\nbogus,bad,2.5\n3,late,3.5\n"

	cfg := config.LoaderConfig{Delimiter: ",", OnError: config.OnErrorSkip}
	table, result, err := stage(t, cfg, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsStaged)
	assert.Equal(t, 1, result.RowsSkipped)
	assert.Equal(t, 2, table.RowCount())
}

func TestLoadTooManyFieldsFailsTheRow(t *testing.T) {
	cfg := config.LoaderConfig{Delimiter: ","}
	_, _, err := stage(t, cfg, "1,a,2.5,extra\n")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
}

func TestLoadHonorsMaxRows(t *testing.T) {
	input := "1,a,1.0\n2,b,2.0\n3,c,3.0\n"

	cfg := config.LoaderConfig{Delimiter: ",", MaxRows: 2}
	table, result, err := stage(t, cfg, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsStaged)
	assert.Equal(t, 2, table.RowCount())
}

func TestLoadStopsOnCanceledContext(t *testing.T) {
	table, err := BuildTable(itemListConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewCSVLoader(config.LoaderConfig{Delimiter: ","}, testutil.TestLogger(t))
	_, err = l.Load(ctx, strings.NewReader("1,a,1.0\n"), table)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeData))
	assert.Equal(t, 0, table.RowCount())
}
