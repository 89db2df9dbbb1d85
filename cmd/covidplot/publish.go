package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/covidplot/internal/chart"
	"github.com/jgoulah/covidplot/internal/publisher"
	"github.com/spf13/cobra"
)

var publishSeries []string

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the latest per-capita values to MQTT",
	Long: `Builds each series and publishes its most recent 7-day average per 100 000 people
as a retained JSON message on <topic_prefix>/<country>[/<province>].`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringArrayVarP(&publishSeries, "series", "s", nil, "Series as country:population[:province] (repeatable)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT is not enabled in config")
	}

	reqs, err := resolveRequests(cfg, publishSeries)
	if err != nil {
		return err
	}

	pub, err := publisher.New(cfg.MQTT, cfg.GetTopicPrefix())
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	builder := newBuilder(cfg)
	published := 0
	for _, req := range reqs {
		result, err := builder.Build(ctx, req)
		if err != nil {
			return fmt.Errorf("building %s: %w", req, err)
		}

		ok, err := pub.Publish(ctx, result)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("  ⚠ %s: not enough data for a 7-day average\n", chart.Label(req))
			continue
		}
		published++
		fmt.Printf("  ✓ %s -> %s\n", chart.Label(req), publisher.Topic(cfg.GetTopicPrefix(), req))
	}

	fmt.Printf("=== Published %d of %d series ===\n", published, len(reqs))
	return nil
}
