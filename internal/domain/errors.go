package domain

import "errors"

var (
	// ErrItemNotFound signals a missing item record.
	ErrItemNotFound = errors.New("item not found")
	// ErrVectorNotFound signals a missing stored item vector.
	ErrVectorNotFound = errors.New("vector not found")
	// ErrModelNotTrained signals that the vocabulary model has not been trained or loaded.
	ErrModelNotTrained = errors.New("vocabulary model not trained")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidRequest signals invalid request parameters.
	ErrInvalidRequest = errors.New("invalid request")
)
