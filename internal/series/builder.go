package series

import (
	"context"
	"fmt"

	"github.com/jgoulah/covidplot/internal/frame"
	"github.com/jgoulah/covidplot/internal/logger"
	"github.com/jgoulah/covidplot/pkg/models"
)

// Fetcher returns the raw confirmed-case rows of a country
type Fetcher interface {
	FetchConfirmed(ctx context.Context, country string) ([]models.CaseRow, error)
}

// Builder runs fetch, load and transform for one request at a time
type Builder struct {
	fetcher Fetcher
}

// NewBuilder creates a builder that fetches through f
func NewBuilder(f Fetcher) *Builder {
	return &Builder{fetcher: f}
}

// Build makes exactly one fetch for req and returns the derived result
func (b *Builder) Build(ctx context.Context, req Request) (Result, error) {
	ctx = logger.WithFields(ctx, "country", req.Country(), "province", req.Province())

	rows, err := b.fetcher.FetchConfirmed(ctx, req.Country())
	if err != nil {
		return Result{}, err
	}

	table, err := frame.New()
	if err != nil {
		return Result{}, fmt.Errorf("creating case table: %w", err)
	}
	defer table.Close()

	if err := table.Load(ctx, rows); err != nil {
		return Result{}, fmt.Errorf("loading case table: %w", err)
	}

	loaded, err := table.Len(ctx)
	if err != nil {
		return Result{}, err
	}
	logger.Infof(ctx, "loaded %d rows", loaded)

	result, err := Attach(ctx, req, table)
	if err != nil {
		return Result{}, err
	}

	if result.Len() == 0 {
		logger.Warnf(ctx, "no rows matched province %q", req.Province())
	}
	logger.Debugf(ctx, "derived %d records from %d rows", result.Len(), loaded)
	return result, nil
}

// BuildAll builds each request in order and stops at the first error
func (b *Builder) BuildAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		r, err := b.Build(ctx, req)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}
