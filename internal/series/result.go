package series

import (
	"context"
	"fmt"

	"github.com/jgoulah/covidplot/pkg/models"
)

// Result is a request together with its derived records
type Result struct {
	req     Request
	records []models.DailyRecord
}

// Attach derives the records for req from a loaded table. It is the only way to
// obtain a Result, so a Result always holds fully derived data.
func Attach(ctx context.Context, req Request, table Selector) (Result, error) {
	records, err := Transform(ctx, table, req.Province(), req.Population())
	if err != nil {
		return Result{}, fmt.Errorf("transforming %s: %w", req, err)
	}
	return Result{req: req, records: records}, nil
}

// Request returns the request the result was built for
func (r Result) Request() Request { return r.req }

// Records returns a copy of the derived records
func (r Result) Records() []models.DailyRecord {
	out := make([]models.DailyRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Len returns the number of derived records
func (r Result) Len() int { return len(r.records) }

// Latest returns the most recent record with a defined per-capita value
func Latest(r Result) (models.DailyRecord, bool) {
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].PerCapita != nil {
			return r.records[i], true
		}
	}
	return models.DailyRecord{}, false
}
