package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")

	// -- Snapshot --
	ErrCorruptSnapshot = errors.New("corrupt cart snapshot")
	ErrFailedSaveCart  = errors.New("failed to save cart snapshot")
	ErrFailedLoadCart  = errors.New("failed to load cart snapshot")
)
