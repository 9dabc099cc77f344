package dataset

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"goscores/adapters/api"
	"goscores/adapters/excel"
	"goscores/adapters/postgres"
	"goscores/adapters/synthetic"
	"goscores/domain/core"
	domainDataset "goscores/domain/dataset"
	"goscores/internal/config"
	"goscores/internal/errors"
	"goscores/ports"
)

// SourceKind classifies a dataset source string
type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceHTTP     SourceKind = "http"
	SourcePostgres SourceKind = "postgres"
	SourceSynth    SourceKind = "synthetic"
)

// ClassifySource decides which reader serves a source string
func ClassifySource(source string) (SourceKind, error) {
	lower := strings.ToLower(strings.TrimSpace(source))
	switch {
	case lower == "":
		return "", fmt.Errorf("%w: empty source", core.ErrUnsupportedSource)
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return SourcePostgres, nil
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceHTTP, nil
	case lower == "synthetic", strings.HasPrefix(lower, "synthetic://"):
		return SourceSynth, nil
	case strings.Contains(lower, "://"):
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedSource, source)
	}
	return SourceFile, nil
}

// NewReader builds the reader for cfg.Source. The returned close function
// releases any connection the reader holds and is never nil.
func NewReader(ctx context.Context, cfg config.DatasetConfig) (ports.TableReader, func() error, error) {
	noop := func() error { return nil }

	kind, err := ClassifySource(cfg.Source)
	if err != nil {
		return nil, noop, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	switch kind {
	case SourcePostgres:
		db, err := postgres.Open(ctx, cfg.Source)
		if err != nil {
			return nil, noop, errors.ExternalServiceError("postgres", err)
		}
		reader, err := postgres.NewTableReader(db, cfg.Table)
		if err != nil {
			db.Close()
			return nil, noop, errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return reader, db.Close, nil
	case SourceHTTP:
		return api.NewHTTPReader(cfg.Source, cfg.JSONPath, cfg.Timeout), noop, nil
	case SourceSynth:
		genConfig, err := parseSyntheticSource(cfg.Source)
		if err != nil {
			return nil, noop, errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return synthetic.NewGenerator(genConfig), noop, nil
	default:
		return excel.NewDataReader(cfg.Source, cfg.Sheet), noop, nil
	}
}

// Load reads and normalizes the dataset once. Any error is fatal for startup.
func Load(ctx context.Context, cfg config.DatasetConfig) (*domainDataset.Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	reader, closeReader, err := NewReader(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dataset reader")
	}
	defer closeReader()

	return LoadFrom(ctx, reader)
}

// LoadFrom reads a table from reader and normalizes it
func LoadFrom(ctx context.Context, reader ports.TableReader) (*domainDataset.Dataset, error) {
	startTime := time.Now()

	raw, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ExternalServiceError("dataset source", err), "failed to read dataset")
	}

	ds, err := Normalize(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to normalize dataset")
	}

	logger.Info("Dataset ready: %d rows from %s in %v", ds.Len(), ds.Source(), time.Since(startTime))
	return ds, nil
}

// parseSyntheticSource reads "synthetic://<count>?seed=<seed>"; both parts are optional
func parseSyntheticSource(source string) (synthetic.GeneratorConfig, error) {
	genConfig := synthetic.DefaultGeneratorConfig()
	if strings.EqualFold(source, "synthetic") {
		return genConfig, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return genConfig, fmt.Errorf("invalid synthetic source %q: %w", source, err)
	}
	if u.Host != "" {
		count, err := strconv.Atoi(u.Host)
		if err != nil || count < 1 {
			return genConfig, fmt.Errorf("invalid synthetic row count %q", u.Host)
		}
		genConfig.Count = count
	}
	if seed := u.Query().Get("seed"); seed != "" {
		parsed, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return genConfig, fmt.Errorf("invalid synthetic seed %q", seed)
		}
		genConfig.Seed = parsed
	}
	return genConfig, nil
}
