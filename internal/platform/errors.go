package platform

import "errors"

// ErrUnknownPlatform is returned when a key is not in the catalog.
var ErrUnknownPlatform = errors.New("unknown platform")
