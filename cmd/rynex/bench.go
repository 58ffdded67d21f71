package main

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/razen-core/rynex-sub002/pkg/dom"
	"github.com/razen-core/rynex-sub002/pkg/reconcile"
	"github.com/razen-core/rynex-sub002/pkg/rynex"
	"github.com/razen-core/rynex-sub002/pkg/telemetry"
	"github.com/razen-core/rynex-sub002/pkg/vdom"
)

type benchProfile struct {
	Name       string
	Effects    int
	ListSize   int
	Iterations int
}

var benchProfiles = map[string]benchProfile{
	"fast": {
		Name:       "fast",
		Effects:    100,
		ListSize:   50,
		Iterations: 1_000,
	},
	"standard": {
		Name:       "standard",
		Effects:    1_000,
		ListSize:   200,
		Iterations: 10_000,
	},
}

func benchCmd() *cobra.Command {
	var profileName string
	var withMetrics bool
	var withTrace bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run reactive and reconcile microbenchmarks",
		Long: `Run in-process microbenchmarks against the reactive graph and the
reconciler, using the in-memory document as the output medium.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, ok := benchProfiles[profileName]
			if !ok {
				return fmt.Errorf("unknown profile %q (have: fast, standard)", profileName)
			}

			var instruments fanoutInstrument
			var tracer *telemetry.Tracer
			if withMetrics {
				instruments = append(instruments, telemetry.NewMetrics())
			}
			if withTrace {
				tracer = telemetry.NewTracer()
				instruments = append(instruments, telemetry.NewFlushSpans(tracer))
			}
			if len(instruments) > 0 {
				rynex.SetInstrument(instruments)
				defer rynex.SetInstrument(nil)
			}

			info("profile %s: %d effects, list size %d, %d iterations",
				profile.Name, profile.Effects, profile.ListSize, profile.Iterations)

			runFlushBench(profile)
			runPatchBench(profile, tracer)

			success("bench complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "fast", "Benchmark profile (fast, standard)")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Register Prometheus collectors during the run")
	cmd.Flags().BoolVar(&withTrace, "trace", false, "Wrap flushes and patches in OpenTelemetry spans")

	return cmd
}

// fanoutInstrument delivers scheduler events to every configured
// instrument.
type fanoutInstrument []rynex.Instrument

func (f fanoutInstrument) FlushStarted() {
	for _, i := range f {
		i.FlushStarted()
	}
}

func (f fanoutInstrument) FlushCompleted(effectsRun int) {
	for _, i := range f {
		i.FlushCompleted(effectsRun)
	}
}

func (f fanoutInstrument) EffectRan() {
	for _, i := range f {
		i.EffectRan()
	}
}

func (f fanoutInstrument) EffectFailed() {
	for _, i := range f {
		i.EffectFailed()
	}
}

// runFlushBench measures write-to-flush latency with many dependent
// effects on one signal.
func runFlushBench(profile benchProfile) {
	owner := rynex.NewOwner(nil)
	defer owner.Dispose()

	count := rynex.NewSignal(0)
	for i := 0; i < profile.Effects; i++ {
		rynex.NewEffect(owner, func() rynex.Cleanup {
			_ = count.Get()
			return nil
		})
	}

	samples := make([]time.Duration, 0, profile.Iterations)
	for i := 0; i < profile.Iterations; i++ {
		start := time.Now()
		count.Set(i + 1)
		owner.Flush()
		samples = append(samples, time.Since(start))
	}

	report("write+flush", samples)
}

// runPatchBench measures keyed-list patching: mount a list, then patch
// against shuffled rebuilds of the same items. A non-nil tracer wraps
// each patch in a span.
func runPatchBench(profile benchProfile, tracer *telemetry.Tracer) {
	doc := dom.NewDocument()
	root := doc.CreateElement("div")
	r := reconcile.New(doc)

	keys := make([]string, profile.ListSize)
	for i := range keys {
		keys[i] = fmt.Sprintf("item-%d", i)
	}

	buildList := func(order []string) *vdom.VNode {
		children := make([]any, len(order))
		for i, key := range order {
			children[i] = vdom.H("li", vdom.Props{"key": key}, key)
		}
		return vdom.H("ul", nil, children...)
	}

	prev := buildList(keys)
	if err := r.Mount(prev, root); err != nil {
		fmt.Println("mount failed:", err)
		return
	}

	rng := rand.New(rand.NewSource(1))
	samples := make([]time.Duration, 0, profile.Iterations)
	order := append([]string(nil), keys...)

	for i := 0; i < profile.Iterations; i++ {
		rng.Shuffle(len(order), func(a, b int) {
			order[a], order[b] = order[b], order[a]
		})
		next := buildList(order)

		start := time.Now()
		err := patchOnce(r, tracer, prev, next)
		if err != nil {
			fmt.Println("patch failed:", err)
			return
		}
		samples = append(samples, time.Since(start))
		prev = next
	}

	report("keyed patch", samples)
}

// patchOnce applies one patch, wrapped in a span when tracing is on.
func patchOnce(r *reconcile.Reconciler, tracer *telemetry.Tracer, prev, next *vdom.VNode) error {
	if tracer == nil {
		return r.Patch(prev, next)
	}
	_, end := tracer.StartPatch(context.Background())
	err := r.Patch(prev, next)
	end(err)
	return err
}

// report prints p50/p99/max for a sample set.
func report(name string, samples []time.Duration) {
	if len(samples) == 0 {
		return
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	percentile := func(p float64) time.Duration {
		idx := int(float64(len(sorted)-1) * p)
		return sorted[idx]
	}

	fmt.Printf("  %-12s p50=%-10s p99=%-10s max=%s\n",
		name, percentile(0.50), percentile(0.99), sorted[len(sorted)-1])
}
