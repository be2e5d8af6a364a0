package export

import "errors"

// Every pipeline failure is terminal for that single export attempt; no
// partial output is ever returned alongside an error.
var (
	// ErrDecode means the source bytes could not be decoded into a raster.
	ErrDecode = errors.New("source image could not be decoded")
	// ErrInvalidDimension means the resolved target rounds to a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("target dimensions must be positive")
	// ErrSurfaceUnavailable means the target canvas could not be allocated.
	ErrSurfaceUnavailable = errors.New("target surface unavailable")
	// ErrEncode means the codec rejected the requested format/quality.
	ErrEncode = errors.New("image could not be encoded")
)
