package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/evsize/api/estimates"
	"github.com/kilianp07/evsize/config"
	coremetrics "github.com/kilianp07/evsize/core/metrics"
	"github.com/kilianp07/evsize/core/sizing"
	"github.com/kilianp07/evsize/infra/logger"
	"github.com/kilianp07/evsize/infra/metrics"
	"github.com/kilianp07/evsize/infra/mqtt"
)

// Service wires the sizing engine to its HTTP API and observability sinks.
type Service struct {
	Engine *sizing.Engine

	sink        coremetrics.Sink
	pub         mqtt.Publisher
	apiAddr     string
	promEnabled bool
	promAddr    string
	log         logger.Logger
	closers     []func() error
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	engine, err := sizing.New(cfg.Engine.Assumptions, cfg.Engine.Params)
	if err != nil {
		return nil, fmt.Errorf("sizing engine: %w", err)
	}

	svc := &Service{
		Engine:      engine,
		apiAddr:     cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
		log:         logg,
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			svc.closers = append(svc.closers, func() error { is.Close(); return nil })
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}
	svc.sink = sink

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
		svc.closers = append(svc.closers, pub.Close)
	}
	return svc, nil
}

// Run serves the sizing API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/estimates", estimates.NewHandler(s.Engine, s.sink, s.pub, logger.New("sizing-api")))
	mux.Handle("/api/health", estimates.NewHealthHandler())

	srv := &http.Server{Addr: s.apiAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("sizing API listening on %s", s.apiAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
