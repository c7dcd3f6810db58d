package apperr

import "fmt"

// NotFoundError reports an unknown entity reference (student, activity,
// criteria, ...). The write that produced it is aborted with no partial state.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError reports malformed input (non-finite score, bad CSV cell,
// mismatched passwords, ...).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AggregationError means a score was written but its recomputation could not
// complete. It always aborts the surrounding transaction, raw write included,
// so an unaggregated row is never persisted.
type AggregationError struct {
	StudentID uint
	Err       error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed for student %d: %v", e.StudentID, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// ConflictError reports a uniqueness violation (duplicate registration,
// duplicate like, taken username).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}
