package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSimpleCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.csv")

	w := NewCSVWriter(nil)
	err := w.WriteSimpleCSV(path, []string{"Symbol", "PChange"}, [][]string{
		{"INFY", "1.20"},
		{"TCS", "-0.50"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// BOM prefix for Excel.
	require.True(t, len(data) >= 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	reader := csv.NewReader(strings.NewReader(string(data[3:])))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Symbol", "PChange"}, rows[0])
	assert.Equal(t, []string{"TCS", "-0.50"}, rows[2])
}

func TestWriteCSV_NoHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	err := NewCSVWriter(nil).WriteCSV(path, WriteOptions{
		Records: [][]string{{"a", "b"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "13.40", formatFloat(13.4))
	assert.Equal(t, "-0.50", formatFloat(-0.5))
	assert.Equal(t, "1234567.80", formatFloat(1234567.8))
}
