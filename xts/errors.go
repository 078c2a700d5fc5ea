package xts

import "errors"

// Sentinel error kinds a caller can discriminate with errors.Is. Every
// returned error wraps exactly one of these via fmt.Errorf's %w verb,
// with surrounding context in the message.
var (
	// ErrConfiguration means the parameters supplied to NewParameters or
	// Init are invalid (bad key length, key length mismatch, sector size
	// below the block size, unknown mode, or an unusable starting sector
	// index).
	ErrConfiguration = errors.New("xts: invalid configuration")

	// ErrLifecycle means the operation is not valid in the cipher's
	// current state (e.g. Process before Init, or any call after
	// Finalize).
	ErrLifecycle = errors.New("xts: operation not valid in current state")

	// ErrInsufficientData means Finalize was reached with fewer than one
	// block of data buffered for the current data unit; XTS ciphertext
	// stealing has no defined output below one block.
	ErrInsufficientData = errors.New("xts: insufficient data for a data unit")

	// ErrSizeMismatch means an Independent-mode cipher was finalized
	// having consumed a number of bytes different from sector_size.
	ErrSizeMismatch = errors.New("xts: data unit length does not match sector size")

	// ErrOutputBufferTooSmall means the destination slice passed to
	// Process or Finalize is smaller than the operation could require.
	ErrOutputBufferTooSmall = errors.New("xts: output buffer too small")
)
