package postgres

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"goscores/domain/dataset"
	"goscores/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var _ ports.TableReader = (*TableReader)(nil)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableReader reads the raw student table from a read-only SQL table
type TableReader struct {
	db    *sqlx.DB
	table string
}

// NewTableReader wraps an open connection. table may be schema-qualified.
func NewTableReader(db *sqlx.DB, table string) (*TableReader, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &TableReader{db: db, table: table}, nil
}

// Open connects to dsn with the postgres driver
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ReadTable selects every row of the table in physical order of the query
func (r *TableReader) ReadTable(ctx context.Context) (*dataset.RawTable, error) {
	startTime := time.Now()
	query := "SELECT * FROM " + quoteIdentifier(r.table)

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := &dataset.RawTable{
		Source:  "postgres:" + r.table,
		Headers: columns,
	}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(table.Rows)+1, err)
		}
		table.Rows = append(table.Rows, CellsToStrings(values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	log.Printf("[TableReader] Read %d rows from %s in %v", len(table.Rows), r.table, time.Since(startTime))
	return table, nil
}

// CellsToStrings renders driver values the way a CSV export would
func CellsToStrings(values []interface{}) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		switch t := v.(type) {
		case nil:
			cells[i] = ""
		case []byte:
			cells[i] = strings.TrimSpace(string(t))
		case string:
			cells[i] = strings.TrimSpace(t)
		case int64:
			cells[i] = strconv.FormatInt(t, 10)
		case float64:
			cells[i] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			cells[i] = strconv.FormatBool(t)
		case time.Time:
			cells[i] = t.Format(time.RFC3339)
		default:
			cells[i] = fmt.Sprint(t)
		}
	}
	return cells
}

func quoteIdentifier(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + p + `"`
	}
	return strings.Join(parts, ".")
}
