package main

import (
	"fmt"
	"os"

	"github.com/jgoulah/covidplot/internal/config"
	"github.com/spf13/cobra"
)

var (
	initSeries []string
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a config file with the given --series (or a sample comparison) so
"covidplot plot" works without flags. An existing file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

// Used when init is run without --series
var sampleSeries = []config.SeriesEntry{
	{Country: "united-kingdom", Population: 66650000},
	{Country: "canada", Population: 14570000, Province: "Ontario"},
	{Country: "germany", Population: 83020000},
}

func init() {
	initCmd.Flags().StringArrayVarP(&initSeries, "series", "s", nil, "Series as country:population[:province] (repeatable)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()
	if err := writeInitialConfig(path, initSeries, initForce); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}

func writeInitialConfig(path string, specs []string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := &config.Config{Series: sampleSeries}
	if len(specs) > 0 {
		reqs, err := resolveRequests(cfg, specs)
		if err != nil {
			return err
		}
		cfg.Series = make([]config.SeriesEntry, 0, len(reqs))
		for _, req := range reqs {
			cfg.Series = append(cfg.Series, config.SeriesEntry{
				Country:    req.Country(),
				Population: req.Population(),
				Province:   req.Province(),
			})
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
