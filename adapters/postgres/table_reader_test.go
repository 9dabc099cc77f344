package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTableReaderValidatesIdentifier(t *testing.T) {
	_, err := NewTableReader(nil, "students_performance")
	assert.NoError(t, err)

	_, err = NewTableReader(nil, "public.students_performance")
	assert.NoError(t, err)

	for _, bad := range []string{"", "students; DROP TABLE x", "1abc", "a.b.c", `"quoted"`} {
		_, err := NewTableReader(nil, bad)
		assert.Error(t, err, bad)
	}
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, `"students"`, quoteIdentifier("students"))
	assert.Equal(t, `"public"."students"`, quoteIdentifier("public.students"))
}

func TestCellsToStrings(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	cells := CellsToStrings([]interface{}{nil, []byte(" group A "), "female", int64(72), 69.5, true, ts, uint8(3)})
	assert.Equal(t, []string{"", "group A", "female", "72", "69.5", "true", "2026-03-04T05:06:07Z", "3"}, cells)
}
