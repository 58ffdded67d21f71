package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/razen-core/rynex-sub002/pkg/reconcile"
	"github.com/razen-core/rynex-sub002/pkg/rynex"
)

func TestMetricsRecordsFlushes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(registry))

	prev := rynex.SetInstrument(metrics)
	defer rynex.SetInstrument(prev)

	owner := rynex.NewOwner(nil)
	defer owner.Dispose()

	count := rynex.NewSignal(0)
	rynex.NewEffect(owner, func() rynex.Cleanup {
		_ = count.Get()
		return nil
	})

	count.Set(1)
	owner.Flush()
	count.Set(2)
	owner.Flush()

	if got := testutil.ToFloat64(metrics.flushesTotal); got != 2 {
		t.Errorf("expected 2 flushes, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.effectRuns); got != 2 {
		t.Errorf("expected 2 effect runs, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.effectErrors); got != 0 {
		t.Errorf("expected 0 effect errors, got %v", got)
	}
}

func TestMetricsRecordsEffectFailures(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(registry))

	prev := rynex.SetInstrument(metrics)
	defer rynex.SetInstrument(prev)

	prevHook := rynex.SetErrorHook(func(string, error) {})
	defer rynex.SetErrorHook(prevHook)

	owner := rynex.NewOwner(nil)
	defer owner.Dispose()

	trigger := rynex.NewSignal(0)
	rynex.NewEffect(owner, func() rynex.Cleanup {
		if trigger.Get() > 0 {
			panic("boom")
		}
		return nil
	})

	trigger.Set(1)
	owner.Flush()

	if got := testutil.ToFloat64(metrics.effectErrors); got != 1 {
		t.Errorf("expected 1 effect error, got %v", got)
	}
}

func TestMetricsRecordsPatchOps(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(WithRegistry(registry))

	metrics.OpApplied(reconcile.OpSetText)
	metrics.OpApplied(reconcile.OpSetText)
	metrics.OpApplied(reconcile.OpMountNode)

	if got := testutil.ToFloat64(metrics.patchOps.WithLabelValues("SetText")); got != 2 {
		t.Errorf("expected 2 SetText ops, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.patchOps.WithLabelValues("MountNode")); got != 1 {
		t.Errorf("expected 1 MountNode op, got %v", got)
	}
}

func TestMetricsOptions(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(
		WithRegistry(registry),
		WithNamespace("custom"),
		WithSubsystem("core"),
		WithConstLabels(prometheus.Labels{"app": "demo"}),
		WithBuckets([]float64{0.001, 0.01}),
	)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "custom_core_flushes_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected namespaced metric custom_core_flushes_total to be registered")
	}
}
