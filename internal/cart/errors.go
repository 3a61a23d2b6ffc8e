package cart

import "errors"

var (
	ErrStorageInit  = errors.New("cart storage init failed")
	ErrStorageWrite = errors.New("cart storage write failed")
	ErrStorageRead  = errors.New("cart storage read failed")

	// ErrNotReady is returned by AddItem and ListItems when Initialize has not
	// completed successfully, or the store was closed.
	ErrNotReady = errors.New("cart store is not ready")
)
