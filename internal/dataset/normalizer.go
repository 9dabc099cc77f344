package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"

	"goscores/domain/core"
	domainDataset "goscores/domain/dataset"
	"goscores/internal"
	"goscores/internal/errors"
)

var logger = internal.DefaultLogger.Component("Normalizer")

// CanonicalColumnName trims a header, lower-cases it and joins inner
// whitespace runs with underscores: " Math  Score" -> "math_score".
func CanonicalColumnName(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(header), "_"))
}

// Normalize validates a raw table and produces the immutable Dataset. The
// input table is not modified. Failures are SCHEMA_ERROR AppErrors wrapping a
// core.ErrSchema sentinel.
func Normalize(raw *domainDataset.RawTable) (*domainDataset.Dataset, error) {
	return normalizeAt(raw, time.Now())
}

func normalizeAt(raw *domainDataset.RawTable, loadedAt time.Time) (*domainDataset.Dataset, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, errors.SchemaError(core.ErrEmptyDataset)
	}

	columns, err := indexColumns(raw.Headers)
	if err != nil {
		return nil, errors.SchemaError(err)
	}

	records := make([]domainDataset.Record, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		record, err := normalizeRow(i+1, row, columns)
		if err != nil {
			return nil, errors.SchemaError(err)
		}
		records = append(records, record)
	}

	ds := domainDataset.New(records, raw.Source, loadedAt)
	logger.Info("Normalized %d rows from %s (fingerprint %.12s)", ds.Len(), raw.Source, ds.Fingerprint())
	return ds, nil
}

// indexColumns maps each required canonical column to its position
func indexColumns(headers []string) (map[string]int, error) {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		name := CanonicalColumnName(h)
		if name == "" {
			continue
		}
		if _, dup := positions[name]; dup {
			return nil, core.ErrDuplicateColumn
		}
		positions[name] = i
	}

	columns := make(map[string]int, len(domainDataset.RequiredColumns))
	for _, required := range domainDataset.RequiredColumns {
		pos, ok := positions[required]
		if !ok {
			return nil, core.NewMissingColumnError(required)
		}
		columns[required] = pos
	}

	if extra := len(positions) - len(columns); extra > 0 {
		logger.Debug("Ignoring %d extra columns", extra)
	}
	return columns, nil
}

func normalizeRow(rowNum int, row []string, columns map[string]int) (domainDataset.Record, error) {
	cell := func(column string) string {
		pos := columns[column]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	code := cell(domainDataset.ColumnGroup)
	group, ok := domainDataset.GroupForCode(code)
	if !ok {
		return domainDataset.Record{}, core.NewUnknownGroupCodeError(rowNum, code)
	}

	record := domainDataset.Record{
		Gender:    cell(domainDataset.ColumnGender),
		Group:     group,
		Education: cell(domainDataset.ColumnEducation),
		Lunch:     cell(domainDataset.ColumnLunch),
		Prep:      cell(domainDataset.ColumnPrep),
	}

	scores := []struct {
		column string
		dst    *float64
	}{
		{domainDataset.ColumnMath, &record.Math},
		{domainDataset.ColumnReading, &record.Reading},
		{domainDataset.ColumnWriting, &record.Writing},
	}
	for _, s := range scores {
		value := cell(s.column)
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || parsed < 0 || parsed > 100 {
			return domainDataset.Record{}, core.NewInvalidScoreError(rowNum, s.column, value)
		}
		*s.dst = parsed
	}

	return record, nil
}
