package contract

import "errors"

var (
	ErrClassifierInvoke = errors.New("classifier invoke failed")
	ErrEmptyCompletion  = errors.New("classifier returned empty completion")
	ErrPromptMissing    = errors.New("required prompt is missing")
	ErrValidation       = errors.New("validation failed")
)
