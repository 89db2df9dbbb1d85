package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List country slugs accepted by the API",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	countries, err := newClient(cfg).Countries(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%-40s  %-4s  %s\n", "Slug", "ISO2", "Country")
	for _, c := range countries {
		fmt.Printf("%-40s  %-4s  %s\n", c.Slug, c.ISO2, c.Country)
	}
	fmt.Printf("\n%d countries\n", len(countries))
	return nil
}
