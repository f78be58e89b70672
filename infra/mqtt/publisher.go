package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled   bool   `json:"enabled"`
	Broker    string `json:"broker"`
	ClientID  string `json:"client_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Topic     string `json:"topic"`
	QoS       byte   `json:"qos"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "evsize/estimates"
	}
	if c.TimeoutMS == 0 {
		c.TimeoutMS = 5000
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	return nil
}

// Publisher pushes computed estimates to downstream consumers.
type Publisher interface {
	PublishEstimate(ev coremetrics.EstimateEvent) error
	Close() error
}

// estimateMessage is the wire payload published per estimate.
type estimateMessage struct {
	RequestID             string        `json:"request_id"`
	ComputedAt            time.Time     `json:"computed_at"`
	VehicleCount          int           `json:"vehicle_count"`
	AvgAnnualKmPerVehicle float64       `json:"avg_annual_km_per_vehicle"`
	Result                sizing.Result `json:"result"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli     pahoClient
	topic   string
	qos     byte
	timeout time.Duration
	log     logger.Logger
}

// NewPahoPublisher connects to the MQTT broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(timeout) {
		return nil, fmt.Errorf("mqtt connect timeout after %s", timeout)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{
		cli:     cli,
		topic:   cfg.Topic,
		qos:     cfg.QoS,
		timeout: timeout,
		log:     logger.New("mqtt_publisher"),
	}, nil
}

// PublishEstimate publishes the estimate as JSON on the configured topic.
func (p *PahoPublisher) PublishEstimate(ev coremetrics.EstimateEvent) error {
	msg := estimateMessage{
		RequestID:             ev.RequestID,
		ComputedAt:            ev.ComputedAt,
		VehicleCount:          ev.VehicleCount,
		AvgAnnualKmPerVehicle: ev.AvgAnnualKmPerVehicle,
		Result:                ev.Result,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal estimate: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, false, payload)
	if !tok.WaitTimeout(p.timeout) {
		return fmt.Errorf("mqtt publish timeout after %s", p.timeout)
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	p.log.Debugw("estimate published", map[string]any{"request_id": ev.RequestID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
	return nil
}
