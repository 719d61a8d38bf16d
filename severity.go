package logbridge

import (
	"fmt"
	"strings"
)

// Severity mirrors the engine's numeric log severities. The values are part of the
// exported verbosity table and must not be renumbered.
type Severity int32

const (
	SeverityDebug Severity = 0
	SeverityInfo  Severity = 1
	SeverityError Severity = 2
)

// String returns the name handed to consumer callbacks.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int32(s))
	}
}

// Valid reports whether s is one of the three engine severities.
func (s Severity) Valid() bool {
	return s >= SeverityDebug && s <= SeverityError
}

// ParseSeverity converts a case-insensitive name ("debug", "info", "error") to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return SeverityDebug, nil
	case "INFO":
		return SeverityInfo, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}

// SeverityFromUint32 validates a numeric severity received from the host.
func SeverityFromUint32(v uint32) (Severity, error) {
	s := Severity(v)
	if v > uint32(SeverityError) || !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSeverity, v)
	}
	return s, nil
}
