package dataprocessing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `SYMBOL,OPEN,LTP,%CHNG,52W H,52W L,30 D   %CHNG
INFY,1490,"1,500.50",1.2,"1,900","1,200",4.5
TCS,3490,3500,-,4000,3000,2.0
HDFC,1580,1600,2.5,1800,1400,6.0
`

func TestLoadCSV(t *testing.T) {
	loader := NewLoader(nil)

	rs, err := loader.LoadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 2, rs.Len())
	assert.Equal(t, 1, rs.Dropped())

	records := rs.Records()
	assert.Equal(t, "INFY", records[0].Symbol)
	assert.Equal(t, 1500.5, records[0].LastPrice)
	assert.Equal(t, "HDFC", records[1].Symbol)
}

func TestLoadCSV_BOM(t *testing.T) {
	loader := NewLoader(nil)

	rs, err := loader.LoadCSV(context.Background(), strings.NewReader("\xEF\xBB\xBF"+sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())
}

func TestLoadCSV_MissingColumnIsFatal(t *testing.T) {
	loader := NewLoader(nil)

	// No 52W H column anywhere: the load must fail with no partial dataset,
	// regardless of how clean the data rows are.
	csv := "SYMBOL,LTP,%CHNG,52W L,30 D %CHNG\nINFY,1500,1.2,1200,4.5\n"
	rs, err := loader.LoadCSV(context.Background(), strings.NewReader(csv))
	require.Error(t, err)
	assert.Nil(t, rs)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"high52week"}, schemaErr.Missing)
}

func TestLoadCSV_EmptyInput(t *testing.T) {
	loader := NewLoader(nil)

	_, err := loader.LoadCSV(context.Background(), strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MW-NIFTY-50.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	rs, err := NewLoader(nil).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.Len())
}

func TestLoadFile_Workbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"SYMBOL", "LTP", "%CHNG", "52W H", "52W L", "30 D %CHNG"}
	row := []interface{}{"INFY", "1,500.50", "1.2", "1,900", "1,200", "4.5"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	path := filepath.Join(t.TempDir(), "nifty.xlsx")
	require.NoError(t, f.SaveAs(path))

	rs, err := NewLoader(nil).LoadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	assert.Equal(t, 1500.5, rs.Records()[0].LastPrice)
}

func TestLoadCSV_Deterministic(t *testing.T) {
	loader := NewLoader(nil)

	first, err := loader.LoadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	second, err := loader.LoadCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, first.Records(), second.Records())
	assert.Equal(t, first.Dropped(), second.Dropped())
}
