package main

import (
	"fmt"

	"github.com/jgoulah/covidplot/internal/config"
	"github.com/jgoulah/covidplot/internal/covidapi"
	"github.com/jgoulah/covidplot/internal/logger"
	"github.com/jgoulah/covidplot/internal/series"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "covidplot",
	Short: "Compare COVID-19 daily new cases per capita across countries",
	Long: `covidplot fetches confirmed COVID-19 case histories from the covid19api service,
derives daily new cases, their 7-day rolling average and that average per 100 000 people,
and renders an interactive chart comparing countries and provinces.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(verbose)
		return config.LoadDotEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with environment overrides")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

func newBuilder(cfg *config.Config) *series.Builder {
	return series.NewBuilder(newClient(cfg))
}

func newClient(cfg *config.Config) *covidapi.Client {
	return covidapi.NewClient(cfg.GetAPIURL(), cfg.HTTPTimeout)
}

// resolveRequests turns --series flags into requests, falling back to the
// series list of the config file when no flag was given
func resolveRequests(cfg *config.Config, specs []string) ([]series.Request, error) {
	var reqs []series.Request

	if len(specs) > 0 {
		for _, spec := range specs {
			req, err := series.ParseSpec(spec)
			if err != nil {
				return nil, err
			}
			reqs = append(reqs, req)
		}
		return reqs, nil
	}

	for i, entry := range cfg.Series {
		req, err := series.NewRequest(entry.Country, entry.Province, entry.Population)
		if err != nil {
			return nil, fmt.Errorf("series %d in config: %w", i+1, err)
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		return nil, fmt.Errorf("no series given: use --series country:population[:province] or add series to %s", getConfigPath())
	}
	return reqs, nil
}
