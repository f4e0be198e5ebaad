package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrUnknownKind) {
//	    // handle unknown kind case
//	}
var (
	// ErrUnknownKind is returned when the factory is asked for a kind it
	// cannot construct.
	ErrUnknownKind = errors.New("device: unknown kind")
)
