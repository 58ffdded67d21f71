package rynex

import "sync"

// Instrument receives scheduler events. Implementations live outside the
// core (see pkg/telemetry); the core calls these record points and makes
// no assumptions about what they do.
type Instrument interface {
	// FlushStarted is called when a Flush begins draining pending work.
	FlushStarted()

	// FlushCompleted is called when a Flush finishes, with the number of
	// effect runs it performed.
	FlushCompleted(effectsRun int)

	// EffectRan is called after each effect body runs during a flush.
	EffectRan()

	// EffectFailed is called when an effect body panic is recovered or a
	// flush exceeds MaxFlushPasses.
	EffectFailed()
}

var (
	instrumentMu sync.RWMutex
	instrument   Instrument
)

// SetInstrument installs the scheduler instrumentation and returns the
// previous value. Pass nil to disable.
func SetInstrument(i Instrument) Instrument {
	instrumentMu.Lock()
	defer instrumentMu.Unlock()
	old := instrument
	instrument = i
	return old
}

func getInstrument() Instrument {
	instrumentMu.RLock()
	defer instrumentMu.RUnlock()
	return instrument
}
