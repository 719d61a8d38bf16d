package logbridge

import (
	"os"
	"sync/atomic"
)

// DefaultThreshold matches the engine's baseline verbosity.
const DefaultThreshold = SeverityError

// VerbosityEnv names the environment variable read by GateFromEnv.
const VerbosityEnv = "LOGBRIDGE_VERBOSITY"

// Gate is the producer-side severity filter. It is checked before any event is built,
// so suppressed events cost one atomic load and a comparison.
//
// Threshold changes apply to events produced afterwards; they are never re-evaluated
// against events already queued or delivered.
type Gate struct {
	threshold atomic.Int32
}

// NewGate returns a Gate with the given threshold. Invalid thresholds fall back to
// DefaultThreshold.
func NewGate(threshold Severity) *Gate {
	g := &Gate{}
	if !threshold.Valid() {
		threshold = DefaultThreshold
	}
	g.threshold.Store(int32(threshold))
	return g
}

// GateFromEnv builds a Gate from the named environment variable (VerbosityEnv when key
// is empty). An unset variable yields def; an unparsable one is an error.
func GateFromEnv(key string, def Severity) (*Gate, error) {
	if key == "" {
		key = VerbosityEnv
	}
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return NewGate(def), nil
	}
	s, err := ParseSeverity(v)
	if err != nil {
		return nil, err
	}
	return NewGate(s), nil
}

// ShouldEmit reports whether an event at severity passes the gate.
func (g *Gate) ShouldEmit(severity Severity) bool {
	return int32(severity) >= g.threshold.Load()
}

// Threshold returns the current minimum severity.
func (g *Gate) Threshold() Severity {
	return Severity(g.threshold.Load())
}

// SetThreshold updates the minimum severity.
func (g *Gate) SetThreshold(severity Severity) error {
	if !severity.Valid() {
		return ErrInvalidSeverity
	}
	g.threshold.Store(int32(severity))
	return nil
}
