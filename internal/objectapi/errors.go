package objectapi

import (
	"errors"

	"github.com/roboticsfoundry/physics-control-plane/engine"
	sim "github.com/roboticsfoundry/physics-control-plane/internal/sim/state"
)

// Stable response codes. Clients and tests assert on these instead of
// matching message strings.
const (
	CodeDuplicateName         = "DUPLICATE_NAME"
	CodeUnknownName           = "UNKNOWN_NAME"
	CodeUnrecognizedKind      = "UNRECOGNIZED_KIND"
	CodeMissingConfigSource   = "MISSING_CONFIG_SOURCE"
	CodeConfigLoadError       = "CONFIG_LOAD_ERROR"
	CodeBackendConstructError = "BACKEND_CONSTRUCT_ERROR"
	CodeUnsupportedOperation  = "UNSUPPORTED_OPERATION"
	CodeInvalidLinkIndex      = "INVALID_LINK_INDEX"
	CodeInvalidOptionValue    = "INVALID_OPTION_VALUE"
	CodeBackendCallError      = "BACKEND_CALL_ERROR"
)

// CodeForError maps registry, object, and engine errors onto response codes.
// Validation failures keep distinct codes so callers can tell them apart
// from backend-originated failures, which fall through to the fallback.
func CodeForError(err error, fallback string) string {
	switch {
	case errors.Is(err, sim.ErrObjectExists):
		return CodeDuplicateName
	case errors.Is(err, sim.ErrObjectNotFound):
		return CodeUnknownName
	case errors.Is(err, engine.ErrDynamicsUnsupported):
		return CodeUnsupportedOperation
	case errors.Is(err, engine.ErrInvalidLink):
		return CodeInvalidLinkIndex
	case errors.Is(err, engine.ErrInvalidOptions):
		return CodeInvalidOptionValue
	default:
		return fallback
	}
}
