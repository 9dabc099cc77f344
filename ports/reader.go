package ports

import (
	"context"

	"goscores/domain/dataset"
)

// TableReader reads the raw, un-normalized student table from a source
type TableReader interface {
	ReadTable(ctx context.Context) (*dataset.RawTable, error)
}
