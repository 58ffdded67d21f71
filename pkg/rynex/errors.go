package rynex

import (
	"errors"
	"sync"
)

// ErrFlushOverrun is reported through the error hook when a single Flush
// exceeds MaxFlushPasses. This almost always means an effect writes a
// cell it also reads, re-scheduling itself in a cycle.
var ErrFlushOverrun = errors.New("rynex: flush exceeded MaxFlushPasses, dropping pending effects")

// ErrorHook receives failures that happen inside flushed effect bodies.
// The core performs no formatting or logging itself; label identifies
// the failing effect and err carries the recovered panic.
type ErrorHook func(label string, err error)

var (
	errorHookMu sync.RWMutex
	errorHook   ErrorHook
)

// SetErrorHook installs the process-wide error hook and returns the
// previous one. A nil hook silences reports.
func SetErrorHook(hook ErrorHook) ErrorHook {
	errorHookMu.Lock()
	defer errorHookMu.Unlock()
	old := errorHook
	errorHook = hook
	return old
}

// reportError delivers an error to the installed hook, if any.
func reportError(label string, err error) {
	errorHookMu.RLock()
	hook := errorHook
	errorHookMu.RUnlock()

	if hook != nil {
		hook(label, err)
	}

	if inst := getInstrument(); inst != nil {
		inst.EffectFailed()
	}
}
