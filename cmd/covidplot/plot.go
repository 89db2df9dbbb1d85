package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/covidplot/internal/browser"
	"github.com/jgoulah/covidplot/internal/chart"
	"github.com/jgoulah/covidplot/internal/series"
	"github.com/spf13/cobra"
)

var (
	plotSeries []string
	plotOutput string
	plotTitle  string
	plotOpen   bool
	plotPNG    string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the per-capita comparison chart",
	Long: `Fetches each series in order, derives the 7-day rolling average of daily new cases
per 100 000 people and writes an interactive HTML chart.

Series come from repeated --series flags (country:population[:province]) or,
when none are given, from the series list in the config file.

Examples:
  covidplot plot --series united-kingdom:66650000 --series canada:14570000:Ontario
  covidplot plot --open
  covidplot plot --png chart.png`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringArrayVarP(&plotSeries, "series", "s", nil, "Series as country:population[:province] (repeatable)")
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "HTML output file (default from config, then chart.html)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "Chart title")
	plotCmd.Flags().BoolVar(&plotOpen, "open", false, "Open the chart in a browser window")
	plotCmd.Flags().StringVar(&plotPNG, "png", "", "Also save a PNG screenshot of the chart")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reqs, err := resolveRequests(cfg, plotSeries)
	if err != nil {
		return err
	}
	if len(reqs) > chart.MaxSeries {
		return fmt.Errorf("%w: %d given, at most %d", chart.ErrTooManySeries, len(reqs), chart.MaxSeries)
	}

	builder := newBuilder(cfg)
	results := make([]series.Result, 0, len(reqs))
	for _, req := range reqs {
		start := time.Now()
		fmt.Printf("Fetching %s...\n", chart.Label(req))

		result, err := builder.Build(ctx, req)
		if err != nil {
			return fmt.Errorf("building %s: %w", req, err)
		}
		results = append(results, result)

		if result.Len() == 0 {
			fmt.Printf("  ⚠ No rows for province %q\n", req.Province())
			continue
		}
		fmt.Printf("  ✓ %s records in %s\n", humanize.Comma(int64(result.Len())), time.Since(start).Round(time.Millisecond))
	}

	plot, err := chart.Build(results)
	if err != nil {
		return fmt.Errorf("building chart: %w", err)
	}

	output := plotOutput
	if output == "" {
		output = cfg.GetChartOutput()
	}
	title := plotTitle
	if title == "" {
		title = cfg.Chart.Title
	}
	width, height := cfg.GetChartWidth(), cfg.GetChartHeight()

	if err := writeChart(output, plot, chart.Options{Title: title, Width: width, Height: height}); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote chart to %s\n", output)

	if plotPNG == "" && !plotOpen {
		return nil
	}

	pageURL, err := browser.FileURL(output)
	if err != nil {
		return err
	}

	if plotPNG != "" {
		png, err := browser.Screenshot(ctx, pageURL, width, height)
		if err != nil {
			return fmt.Errorf("taking screenshot: %w", err)
		}
		if err := os.WriteFile(plotPNG, png, 0644); err != nil {
			return fmt.Errorf("writing screenshot: %w", err)
		}
		fmt.Printf("✓ Wrote screenshot to %s (%s)\n", plotPNG, humanize.Bytes(uint64(len(png))))
	}

	if plotOpen {
		fmt.Println("Opening chart in browser. Press Enter here to close it...")
		err := browser.Show(ctx, pageURL, func() error {
			return waitForEnter(ctx, os.Stdin)
		})
		if err != nil {
			return fmt.Errorf("showing chart: %w", err)
		}
	}

	return nil
}

// waitForEnter blocks until a line is read from in or ctx is done. When in is
// closed (not a terminal, EOF) it falls back to waiting for ctx.
func waitForEnter(ctx context.Context, in io.Reader) error {
	read := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		read <- err
	}()

	select {
	case err := <-read:
		switch {
		case err == nil:
			return nil
		case errors.Is(err, io.EOF):
			fmt.Println("stdin is closed. Press Ctrl-C to close the browser...")
			<-ctx.Done()
			return nil
		default:
			return fmt.Errorf("reading stdin: %w", err)
		}
	case <-ctx.Done():
		return nil
	}
}

func writeChart(path string, plot chart.Plot, opts chart.Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := chart.Render(f, plot, opts); err != nil {
		return err
	}
	return f.Close()
}
