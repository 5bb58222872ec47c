package extension

import "errors"

var (
	// ErrDiscoveryUnavailable reports a missing install manifest. A fresh
	// host installation has no manifest yet, so callers treat this as "no
	// extensions" rather than a hard failure.
	ErrDiscoveryUnavailable = errors.New("install manifest not found")

	// ErrUnknownExtension reports an operation referencing an id absent
	// from the registry.
	ErrUnknownExtension = errors.New("unknown extension")
)
