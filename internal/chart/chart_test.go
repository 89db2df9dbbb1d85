package chart

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jgoulah/covidplot/internal/series"
	"github.com/jgoulah/covidplot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rowsSelector []models.CaseRow

func (s rowsSelector) Select(_ context.Context, province string) ([]models.CaseRow, error) {
	var out []models.CaseRow
	for _, r := range s {
		if r.Province == province {
			out = append(out, r)
		}
	}
	return out, nil
}

func request(t *testing.T, country, province string) series.Request {
	t.Helper()
	req, err := series.NewRequest(country, province, 1000000)
	require.NoError(t, err)
	return req
}

func result(t *testing.T, req series.Request, n int) series.Result {
	t.Helper()
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := make(rowsSelector, n)
	for i := range rows {
		rows[i] = models.CaseRow{
			Country:  "Canada",
			Province: req.Province(),
			Cases:    int64(i * 50),
			Date:     start.AddDate(0, 0, i).Format(time.RFC3339),
		}
	}
	r, err := series.Attach(context.Background(), req, rows)
	require.NoError(t, err)
	return r
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "United Kingdom", Label(request(t, "united-kingdom", "")))
	assert.Equal(t, "Canada (Ontario)", Label(request(t, "canada", "Ontario")))
	assert.Equal(t, "Australia (New South Wales)", Label(request(t, "australia", "new south wales")))
	assert.Equal(t, "Bosnia And Herzegovina", Label(request(t, "bosnia-and-herzegovina", "")))
}

func TestBuildAssignsPaletteInOrder(t *testing.T) {
	results := []series.Result{
		result(t, request(t, "canada", ""), 10),
		result(t, request(t, "canada", "Ontario"), 10),
		result(t, request(t, "germany", ""), 10),
		result(t, request(t, "italy", ""), 10),
	}

	plot, err := Build(results)
	require.NoError(t, err)
	require.Len(t, plot.Series, 4)

	want := []string{"#0072B2", "#E69F00", "#F0E442", "#009E73"}
	for i, s := range plot.Series {
		assert.Equal(t, want[i], s.Color)
	}
	assert.Equal(t, "Canada (Ontario)", plot.Series[1].Label)
}

func TestBuildTwoSeriesUsesThreeColorPalette(t *testing.T) {
	plot, err := Build([]series.Result{
		result(t, request(t, "canada", ""), 8),
		result(t, request(t, "germany", ""), 8),
	})
	require.NoError(t, err)
	require.Len(t, plot.Series, 2)
	assert.Equal(t, "#0072B2", plot.Series[0].Color)
	assert.Equal(t, "#E69F00", plot.Series[1].Color)
}

func TestBuildSkipsUndefinedPerCapita(t *testing.T) {
	plot, err := Build([]series.Result{result(t, request(t, "canada", ""), 10)})
	require.NoError(t, err)

	// 10 records, the first 6 have no rolling average yet
	points := plot.Series[0].Points
	require.Len(t, points, 4)
	assert.InDelta(t, 30.0/7, points[0].PerCapita, 1e-9)
	assert.InDelta(t, 5.0, points[1].PerCapita, 1e-9)
	assert.Equal(t, int64(50), points[0].DailyCases)
	assert.Equal(t, "Canada", points[0].Country)
	assert.Equal(t, 7, points[0].Date.Day())
}

func TestBuildEmptySeriesIsKept(t *testing.T) {
	plot, err := Build([]series.Result{result(t, request(t, "canada", "Atlantis"), 0)})
	require.NoError(t, err)
	require.Len(t, plot.Series, 1)
	assert.Empty(t, plot.Series[0].Points)
}

func TestBuildTooManySeries(t *testing.T) {
	results := make([]series.Result, MaxSeries+1)
	for i := range results {
		results[i] = result(t, request(t, "canada", ""), 1)
	}
	_, err := Build(results)
	assert.ErrorIs(t, err, ErrTooManySeries)
}

func TestRenderWritesInteractivePage(t *testing.T) {
	plot, err := Build([]series.Result{
		result(t, request(t, "united-kingdom", ""), 9),
		result(t, request(t, "canada", "Ontario"), 9),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plot, Options{Title: "Comparison"}))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "United Kingdom")
	assert.Contains(t, html, "Canada (Ontario)")
	assert.Contains(t, html, XAxisLabel)
	assert.Contains(t, html, YAxisLabel)
	assert.Contains(t, html, "800px")
	assert.Contains(t, html, "400px")
	assert.Contains(t, html, "rgba(0,114,178,0.8)")
	assert.Contains(t, html, "2020-03-09")
}

func TestRenderTooltipAndLegend(t *testing.T) {
	plot, err := Build([]series.Result{result(t, request(t, "united-kingdom", ""), 9)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plot, Options{}))
	html := buf.String()

	// Hover lines
	assert.Contains(t, html, `"trigger":"item"`)
	assert.Contains(t, html, "Daily New Cases 7-Day Rolling Avg: ")
	assert.Contains(t, html, " per 100k ppl<br/>")
	assert.Contains(t, html, "Daily New Cases Raw Count: ")
	assert.Contains(t, html, " Total<br/>")
	assert.Contains(t, html, "'Country: ' + esc(String(v[3]))")
	assert.Contains(t, html, "'Date: ' + v[0]")

	// Points are [date, per capita, daily, country]
	assert.Contains(t, html, `"value":["2020-03-07",4.285714285714286,50,"Canada"]`)

	// Legend on the right, one entry per series
	assert.Contains(t, html, `"legend":{`)
	assert.Contains(t, html, `"orient":"vertical"`)
	assert.Contains(t, html, `"right":"0"`)
	assert.Contains(t, html, `"name":"United Kingdom"`)
}

func TestRenderEscapesNamesInTooltip(t *testing.T) {
	plot, err := Build([]series.Result{result(t, request(t, "canada", "<img src=x>"), 9)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, plot, Options{}))
	html := buf.String()

	assert.Contains(t, html, "esc(p.seriesName)")
	assert.NotContains(t, html, "'<b>' + p.seriesName")
}
