package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/covidplot/internal/chart"
	"github.com/jgoulah/covidplot/internal/series"
	"github.com/spf13/cobra"
)

var (
	listPopulation int64
	listProvince   string
	listTail       int
)

var listCmd = &cobra.Command{
	Use:   "list [country]",
	Short: "Print the derived daily series for one country",
	Long: `Fetches one country and prints daily new cases, the 7-day rolling average
and the average per 100 000 people for each reporting day.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().Int64Var(&listPopulation, "population", 0, "Population used for the per 100k rate (required)")
	listCmd.Flags().StringVar(&listProvince, "province", "", "Province to select (default: national total)")
	listCmd.Flags().IntVar(&listTail, "tail", 0, "Only show the last N records (0 = all)")
	listCmd.MarkFlagRequired("population")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	req, err := series.NewRequest(args[0], listProvince, listPopulation)
	if err != nil {
		return err
	}

	result, err := newBuilder(cfg).Build(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("building %s: %w", req, err)
	}

	records := result.Records()
	if len(records) == 0 {
		fmt.Printf("No data found for %s\n", chart.Label(req))
		return nil
	}
	if listTail > 0 && listTail < len(records) {
		records = records[len(records)-listTail:]
	}

	fmt.Printf("\n%s (population %s):\n", chart.Label(req), humanize.Comma(req.Population()))
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%-12s  %12s  %10s  %12s  %10s\n", "Date", "Cumulative", "Daily", "7-Day Avg", "Per 100k")
	fmt.Println("------------------------------------------------------------")

	for _, r := range records {
		avg, perCapita := "-", "-"
		if r.RollingAverage != nil {
			avg = fmt.Sprintf("%.1f", *r.RollingAverage)
			perCapita = fmt.Sprintf("%.2f", *r.PerCapita)
		}
		fmt.Printf("%-12s  %12s  %10s  %12s  %10s\n",
			r.Date.Format("2006-01-02"), humanize.Comma(r.Cases), humanize.Comma(r.DailyCases), avg, perCapita)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%d records\n", len(records))
	return nil
}
