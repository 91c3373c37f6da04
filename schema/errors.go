package schema

import "errors"

var (
	ErrUnsupportedType  = errors.New("unsupported field type")
	ErrInvalidFieldName = errors.New("invalid field name")
	ErrDuplicateField   = errors.New("duplicate field name")
	ErrNoFields         = errors.New("record has no fields")
	ErrEmptyName        = errors.New("schema name cannot be empty")

	// ErrValidation is returned when a model output does not satisfy the target schema.
	ErrValidation = errors.New("output does not match schema")
)
