// Package series turns raw cumulative case rows into daily, smoothed and
// population-normalized records.
package series

import (
	"context"
	"fmt"
	"time"

	"github.com/jgoulah/covidplot/pkg/models"
)

const (
	// RollingWindow is the number of consecutive records averaged for the DCRA
	RollingWindow = 7
	// PerPopulation is the per-capita scale (cases per 100 000 people)
	PerPopulation = 100000
)

// Selector returns the rows of a single province in source order
type Selector interface {
	Select(ctx context.Context, province string) ([]models.CaseRow, error)
}

// Transform selects the province rows from table and derives the daily series
func Transform(ctx context.Context, table Selector, province string, population int64) ([]models.DailyRecord, error) {
	rows, err := table.Select(ctx, province)
	if err != nil {
		return nil, fmt.Errorf("selecting province %q: %w", province, err)
	}
	return Derive(rows, population)
}

// Derive computes daily new cases, the trailing rolling average and its per-capita
// rate for rows that already belong to one province.
//
//   - daily[0] = 0, daily[i] = cases[i] - cases[i-1] over the input order
//   - records with daily < 0 are dropped after differencing
//   - rolling = mean of the last RollingWindow kept records, nil before that
//   - per_capita = rolling / population * PerPopulation, nil when rolling is nil
func Derive(rows []models.CaseRow, population int64) ([]models.DailyRecord, error) {
	if population <= 0 {
		return nil, fmt.Errorf("%w: population must be positive, got %d", ErrInvalidSeriesSpec, population)
	}

	records := make([]models.DailyRecord, 0, len(rows))
	var prev int64
	for i, r := range rows {
		date, err := parseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing date of row %d: %w", i, err)
		}

		var daily int64
		if i > 0 {
			daily = r.Cases - prev
		}
		prev = r.Cases

		if daily < 0 {
			continue
		}

		records = append(records, models.DailyRecord{
			Date:       date,
			Country:    r.Country,
			Province:   r.Province,
			Cases:      r.Cases,
			DailyCases: daily,
		})
	}

	var sum int64
	for i := range records {
		sum += records[i].DailyCases
		if i >= RollingWindow {
			sum -= records[i-RollingWindow].DailyCases
		}
		if i < RollingWindow-1 {
			continue
		}

		avg := float64(sum) / RollingWindow
		perCapita := avg / float64(population) * PerPopulation
		records[i].RollingAverage = &avg
		records[i].PerCapita = &perCapita
	}

	return records, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
