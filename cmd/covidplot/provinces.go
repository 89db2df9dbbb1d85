package main

import (
	"fmt"

	"github.com/jgoulah/covidplot/internal/frame"
	"github.com/spf13/cobra"
)

var provincesCmd = &cobra.Command{
	Use:   "provinces [country]",
	Short: "List the provinces reported for a country",
	Long: `Lists the province names the source reports for a country. Use one of them
with --province or as the third part of a --series spec.`,
	Args: cobra.ExactArgs(1),
	RunE: runProvinces,
}

func init() {
	rootCmd.AddCommand(provincesCmd)
}

func runProvinces(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	country := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	rows, err := newClient(cfg).FetchConfirmed(ctx, country)
	if err != nil {
		return err
	}

	table, err := frame.New()
	if err != nil {
		return fmt.Errorf("creating case table: %w", err)
	}
	defer table.Close()

	if err := table.Load(ctx, rows); err != nil {
		return fmt.Errorf("loading case table: %w", err)
	}

	provinces, err := table.Provinces(ctx)
	if err != nil {
		return fmt.Errorf("listing provinces: %w", err)
	}

	if len(provinces) == 0 {
		fmt.Printf("No data found for %s\n", country)
		return nil
	}

	for _, p := range provinces {
		if p == "" {
			fmt.Println("(national total)")
			continue
		}
		fmt.Println(p)
	}
	return nil
}
