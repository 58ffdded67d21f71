// Package telemetry provides Prometheus metrics and OpenTelemetry
// tracing for the reactive core.
//
// Metrics implements rynex.Instrument and reconcile.Observer, so one
// value can be installed on both sides:
//
//	m := telemetry.NewMetrics()
//	rynex.SetInstrument(m)
//	reconciler.SetObserver(m)
//
// Tracer wraps flush and patch cycles in spans for hosts that run an
// OpenTelemetry SDK; without an SDK the calls are no-ops.
package telemetry
