package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/jgoulah/covidplot/internal/chart"
	"github.com/jgoulah/covidplot/internal/config"
	"github.com/jgoulah/covidplot/internal/logger"
	"github.com/jgoulah/covidplot/internal/series"
)

// sender is the part of mqtt.Client the publisher needs
type sender interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher sends the latest per-capita point of each series to an MQTT broker
type Publisher struct {
	client      sender
	topicPrefix string
	disconnect  func()
}

// New connects to the broker described by cfg
func New(cfg config.MQTTConfig, topicPrefix string) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("MQTT publishing is not enabled in config")
	}
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required when enabled")
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "covidplot-" + uuid.NewString()[:8]
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(false)
	opts.SetConnectTimeout(10 * time.Second)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}

	p := newPublisher(client, topicPrefix)
	p.disconnect = func() {
		if client.IsConnected() {
			client.Disconnect(250)
		}
	}
	return p, nil
}

func newPublisher(client sender, topicPrefix string) *Publisher {
	return &Publisher{client: client, topicPrefix: topicPrefix, disconnect: func() {}}
}

// Payload is the retained message body
type Payload struct {
	Label          string  `json:"label"`
	Country        string  `json:"country"`
	Province       string  `json:"province,omitempty"`
	Date           string  `json:"date"`
	Population     int64   `json:"population"`
	DailyCases     int64   `json:"daily_cases"`
	RollingAverage float64 `json:"rolling_average"`
	PerCapita      float64 `json:"per_capita"`
}

// Topic returns <prefix>/<country>[/<province>], lower-cased with spaces as underscores
func Topic(prefix string, req series.Request) string {
	parts := []string{prefix, topicSegment(req.Country())}
	if req.Province() != "" {
		parts = append(parts, topicSegment(req.Province()))
	}
	return strings.Join(parts, "/")
}

func topicSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	// Wildcards and separators are not allowed inside a segment
	return strings.NewReplacer("/", "_", "+", "_", "#", "_").Replace(s)
}

// BuildPayload describes the latest defined point of result. ok is false when the
// series has no per-capita value yet.
func BuildPayload(result series.Result) (Payload, bool) {
	latest, ok := series.Latest(result)
	if !ok {
		return Payload{}, false
	}

	req := result.Request()
	return Payload{
		Label:          chart.Label(req),
		Country:        req.Country(),
		Province:       req.Province(),
		Date:           latest.Date.Format("2006-01-02"),
		Population:     req.Population(),
		DailyCases:     latest.DailyCases,
		RollingAverage: *latest.RollingAverage,
		PerCapita:      *latest.PerCapita,
	}, true
}

// Publish sends the latest point of result as a retained message. It returns
// false without publishing when the series has no per-capita value.
func (p *Publisher) Publish(ctx context.Context, result series.Result) (bool, error) {
	payload, ok := BuildPayload(result)
	if !ok {
		logger.Warnf(ctx, "nothing to publish for %s", result.Request())
		return false, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encoding payload: %w", err)
	}

	topic := Topic(p.topicPrefix, result.Request())
	token := p.client.Publish(topic, 1, true, body)

	select {
	case <-token.Done():
	case <-ctx.Done():
		return false, ctx.Err()
	}
	if err := token.Error(); err != nil {
		return false, fmt.Errorf("publishing to %s: %w", topic, err)
	}

	logger.Debugf(ctx, "published %s", topic)
	return true, nil
}

// Close disconnects from the MQTT broker
func (p *Publisher) Close() {
	p.disconnect()
}
