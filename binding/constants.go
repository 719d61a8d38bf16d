package binding

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"

	"github.com/trickstertwo/logbridge"
)

// Table is one named group of numeric constants exported to the host.
type Table map[string]uint32

// Status mirrors the RPC status codes.
var Status = Table{
	"OK":                  uint32(codes.OK),
	"CANCELLED":           uint32(codes.Canceled),
	"UNKNOWN":             uint32(codes.Unknown),
	"INVALID_ARGUMENT":    uint32(codes.InvalidArgument),
	"DEADLINE_EXCEEDED":   uint32(codes.DeadlineExceeded),
	"NOT_FOUND":           uint32(codes.NotFound),
	"ALREADY_EXISTS":      uint32(codes.AlreadyExists),
	"PERMISSION_DENIED":   uint32(codes.PermissionDenied),
	"UNAUTHENTICATED":     uint32(codes.Unauthenticated),
	"RESOURCE_EXHAUSTED":  uint32(codes.ResourceExhausted),
	"FAILED_PRECONDITION": uint32(codes.FailedPrecondition),
	"ABORTED":             uint32(codes.Aborted),
	"OUT_OF_RANGE":        uint32(codes.OutOfRange),
	"UNIMPLEMENTED":       uint32(codes.Unimplemented),
	"INTERNAL":            uint32(codes.Internal),
	"UNAVAILABLE":         uint32(codes.Unavailable),
	"DATA_LOSS":           uint32(codes.DataLoss),
}

// CallError is the result of starting a batch on a call.
var CallError = Table{
	"OK":                  0,
	"ERROR":               1,
	"NOT_ON_SERVER":       2,
	"NOT_ON_CLIENT":       3,
	"ALREADY_INVOKED":     5,
	"NOT_INVOKED":         6,
	"ALREADY_FINISHED":    7,
	"TOO_MANY_OPERATIONS": 8,
	"INVALID_FLAGS":       9,
}

// OpType enumerates batch operations.
var OpType = Table{
	"SEND_INITIAL_METADATA":   0,
	"SEND_MESSAGE":            1,
	"SEND_CLOSE_FROM_CLIENT":  2,
	"SEND_STATUS_FROM_SERVER": 3,
	"RECV_INITIAL_METADATA":   4,
	"RECV_MESSAGE":            5,
	"RECV_STATUS_ON_CLIENT":   6,
	"RECV_CLOSE_ON_SERVER":    7,
}

// Propagate holds the parent-call propagation bits.
var Propagate = Table{
	"DEADLINE":               0x1,
	"CENSUS_STATS_CONTEXT":   0x2,
	"CENSUS_TRACING_CONTEXT": 0x4,
	"CANCELLATION":           0x8,
	"DEFAULTS":               0xffff,
}

// ConnectivityState mirrors channel connectivity. FATAL_FAILURE is the host's name for
// a shut down channel.
var ConnectivityState = Table{
	"IDLE":              uint32(connectivity.Idle),
	"CONNECTING":        uint32(connectivity.Connecting),
	"READY":             uint32(connectivity.Ready),
	"TRANSIENT_FAILURE": uint32(connectivity.TransientFailure),
	"FATAL_FAILURE":     uint32(connectivity.Shutdown),
}

// WriteFlags are per-message write options.
var WriteFlags = Table{
	"BUFFER_HINT": 0x1,
	"NO_COMPRESS": 0x2,
}

// LogVerbosity exposes the severities accepted by SetLogVerbosity.
var LogVerbosity = Table{
	logbridge.SeverityDebug.String(): uint32(logbridge.SeverityDebug),
	logbridge.SeverityInfo.String():  uint32(logbridge.SeverityInfo),
	logbridge.SeverityError.String(): uint32(logbridge.SeverityError),
}

// Tables returns every exported table keyed by its host-visible name.
func Tables() map[string]Table {
	return map[string]Table{
		"status":            Status,
		"callError":         CallError,
		"opType":            OpType,
		"propagate":         Propagate,
		"connectivityState": ConnectivityState,
		"writeFlags":        WriteFlags,
		"logVerbosity":      LogVerbosity,
	}
}
