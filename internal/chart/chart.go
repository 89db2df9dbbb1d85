// Package chart builds and renders the per-capita comparison chart.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jgoulah/covidplot/internal/series"
)

const (
	XAxisLabel = "Date (M/YYYY)"
	YAxisLabel = "Daily New Cases per 100 000 people"

	pointAlpha = 0.8
	pointSize  = 6
)

// Plot is a renderer-independent description of the chart
type Plot struct {
	Series []Series
}

// Series is one legend entry and its points
type Series struct {
	Label  string
	Color  string
	Points []Point
}

// Point is one plotted record
type Point struct {
	Date       time.Time
	PerCapita  float64
	DailyCases int64
	Country    string
}

// Options controls page rendering
type Options struct {
	Title  string
	Width  int
	Height int
}

// Build lays out one series per result, in order. Records without a per-capita
// value (the first days of each series) are not plotted.
func Build(results []series.Result) (Plot, error) {
	palette, err := Palette(len(results))
	if err != nil {
		return Plot{}, err
	}

	plot := Plot{Series: make([]Series, 0, len(results))}
	for i, r := range results {
		s := Series{
			Label: Label(r.Request()),
			Color: palette[i],
		}
		for _, rec := range r.Records() {
			if rec.PerCapita == nil {
				continue
			}
			s.Points = append(s.Points, Point{
				Date:       rec.Date,
				PerCapita:  *rec.PerCapita,
				DailyCases: rec.DailyCases,
				Country:    rec.Country,
			})
		}
		plot.Series = append(plot.Series, s)
	}

	return plot, nil
}

// Tooltip lines are read from the point value: [date, per capita, daily, country].
// Series and country names come from user input and are HTML-escaped.
const tooltipFormatter = `function (p) {
	var v = p.value;
	var esc = echarts.format.encodeHTML;
	return '<b>' + esc(p.seriesName) + '</b><br/>' +
		'Daily New Cases 7-Day Rolling Avg: ' + v[1].toFixed(3) + ' per 100k ppl<br/>' +
		'Daily New Cases Raw Count: ' + v[2] + ' Total<br/>' +
		'Country: ' + esc(String(v[3])) + '<br/>' +
		'Date: ' + v[0];
}`

// Render writes the plot as a self-contained interactive HTML page
func Render(w io.Writer, plot Plot, o Options) error {
	width, height := o.Width, o.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle(o.Title),
			Width:     fmt.Sprintf("%dpx", width),
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{Title: o.Title}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:         "time",
			Name:         XAxisLabel,
			NameLocation: "middle",
			NameGap:      30,
			AxisLabel:    &opts.AxisLabel{Formatter: "{M}/{yyyy}"},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:         "value",
			Name:         YAxisLabel,
			NameLocation: "middle",
			NameGap:      40,
		}),
		// Clicking a legend entry hides its series
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Right:  "0",
			Top:    "middle",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipFormatter),
		}),
		charts.WithGridOpts(opts.Grid{Right: "22%"}),
	)

	for _, s := range plot.Series {
		data := make([]opts.ScatterData, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, opts.ScatterData{
				Value:      []interface{}{p.Date.Format("2006-01-02"), p.PerCapita, p.DailyCases, p.Country},
				SymbolSize: pointSize,
			})
		}
		scatter.AddSeries(s.Label, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: rgba(s.Color, pointAlpha)}),
		)
	}

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func pageTitle(title string) string {
	if title == "" {
		return "COVID-19 daily new cases per 100k"
	}
	return title
}
