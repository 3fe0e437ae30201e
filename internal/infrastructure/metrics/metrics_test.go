package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.AccountsCreated == nil || m.EntriesRecorded == nil || m.EntryErrors == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.AccountsCreated.Inc()
	m.EntriesRecorded.WithLabelValues("Inbound").Inc()
	m.AccountBalance.WithLabelValues("acc-1").Set(42)
	m.EntryDuration.Observe(0.01)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewIsSafeWithFreshRegistries(t *testing.T) {
	// Two instances on separate registries must not collide.
	m1 := New(prometheus.NewRegistry())
	m2 := New(prometheus.NewRegistry())

	m1.AccountsCreated.Inc()
	m2.AccountsCreated.Inc()
}
