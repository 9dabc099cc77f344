package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `"gender","race/ethnicity","parental level of education","lunch","test preparation course","math score","reading score","writing score"
"female","group B","bachelor's degree","standard","none","72","72","74"
"male","group C","some college","free/reduced","completed", 69 ,"90","88"

"female","group A","high school","standard","none","47","57"
`

func TestParseCSV(t *testing.T) {
	table, err := ParseCSV("memory", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, "memory", table.Source)
	assert.Len(t, table.Headers, 8)
	assert.Equal(t, "parental level of education", table.Headers[2])
	require.Len(t, table.Rows, 3, "blank line must be skipped")
	assert.Equal(t, "69", table.Rows[1][5], "cells are trimmed")
	assert.Len(t, table.Rows[2], 7, "ragged rows are kept as-is")
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV("empty", strings.NewReader(""))
	assert.Error(t, err)
}

func TestDataReaderCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := NewDataReader(path, "").ReadTable(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)
}

func TestDataReaderXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"gender", "race/ethnicity", "math score"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"female", "group D", 88}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"male", "group E", 91}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewDataReader(path, "").ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "race/ethnicity", "math score"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"male", "group E", "91"}, table.Rows[1])
}

func TestDataReaderMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), "").ReadTable(context.Background())
	assert.Error(t, err)
}

func TestDataReaderCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDataReader("whatever.csv", "").ReadTable(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
