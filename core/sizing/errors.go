package sizing

import "errors"

var (
	// ErrInvalidInput flags non-positive fleet quantities.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration flags a cost table or parameter set that cannot
	// serve the chosen charger class.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
