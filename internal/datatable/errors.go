package datatable

import "errors"

var (
	// ErrInvalidColumn is returned by New for malformed column descriptors.
	ErrInvalidColumn = errors.New("invalid column descriptor")

	// ErrInvalidAction is returned by New for malformed row actions.
	ErrInvalidAction = errors.New("invalid row action")

	// ErrInvalidConfig is returned for unusable table configuration.
	ErrInvalidConfig = errors.New("invalid table config")

	// ErrInvalidFilter is returned when a filter names an unknown column,
	// uses an operator the column type does not support, or has no value.
	ErrInvalidFilter = errors.New("invalid filter")

	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnNotSortable = errors.New("column not sortable")
	ErrUnknownAction     = errors.New("unknown action")
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateRecord   = errors.New("duplicate record id")
	ErrSelectionDisabled = errors.New("selection disabled")
)
