package world

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/Scrimzay/cookiewarriors/internal/world"

type metrics struct {
	ticks    metric.Int64Counter
	spawned  metric.Int64Counter
	deployed metric.Int64Counter
	rejected metric.Int64Counter
}

func newMetrics(mp metric.MeterProvider, store *Store, log zerolog.Logger) *metrics {
	meter := mp.Meter(instrumentationName)
	m := &metrics{}

	var err error
	if m.ticks, err = meter.Int64Counter("cookiewarriors.ticks",
		metric.WithDescription("Simulation task ticks run")); err != nil {
		log.Warn().Err(err).Msg("ticks counter unavailable")
		m.ticks = noop.Int64Counter{}
	}
	if m.spawned, err = meter.Int64Counter("cookiewarriors.monsters.spawned",
		metric.WithDescription("Monsters added by the spawner")); err != nil {
		log.Warn().Err(err).Msg("spawn counter unavailable")
		m.spawned = noop.Int64Counter{}
	}
	if m.deployed, err = meter.Int64Counter("cookiewarriors.cookies.deployed",
		metric.WithDescription("Cookies deployed by players")); err != nil {
		log.Warn().Err(err).Msg("deploy counter unavailable")
		m.deployed = noop.Int64Counter{}
	}
	if m.rejected, err = meter.Int64Counter("cookiewarriors.actions.rejected",
		metric.WithDescription("Player actions refused by the simulation")); err != nil {
		log.Warn().Err(err).Msg("reject counter unavailable")
		m.rejected = noop.Int64Counter{}
	}

	units, err := meter.Int64ObservableGauge("cookiewarriors.units",
		metric.WithDescription("Units alive in the current session"))
	if err != nil {
		log.Warn().Err(err).Msg("unit gauge unavailable")
		return m
	}
	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := store.Snapshot()
		o.ObserveInt64(units, int64(len(s.Cookies)), metric.WithAttributes(attribute.String("kind", "cookie")))
		o.ObserveInt64(units, int64(len(s.Monsters)), metric.WithAttributes(attribute.String("kind", "monster")))
		return nil
	}, units)
	if err != nil {
		log.Warn().Err(err).Msg("unit gauge callback not registered")
	}

	return m
}

func (m *metrics) tick(task string) {
	m.ticks.Add(context.Background(), 1, metric.WithAttributes(attribute.String("task", task)))
}

func (m *metrics) spawn(v Variant) {
	m.spawned.Add(context.Background(), 1, metric.WithAttributes(attribute.String("variant", v.String())))
}

func (m *metrics) deploy(archetype string) {
	m.deployed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("archetype", archetype)))
}

func (m *metrics) reject(action, reason string) {
	m.rejected.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("reason", reason),
	))
}
