package model

import "errors"

var (
	ErrShapeMismatch      = errors.New("shape mismatch")
	ErrEmptyDataset       = errors.New("empty dataset")
	ErrUninitializedModel = errors.New("model has not been trained")
	ErrMissingPredictions = errors.New("no predictions to score")
	ErrUnknownLabel       = errors.New("unknown label")
	ErrInvalidParams      = errors.New("invalid model parameters")
)
