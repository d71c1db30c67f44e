package transform

import (
	"fmt"

	"github.com/rgehrsitz/finiquito/internal/domain"
)

// RecordTransform defines the interface for all what-if record changes.
// Transforms are composable operations that modify a copy of a record in a
// predictable way, feeding record comparison and break-even searches.
type RecordTransform interface {
	// Apply returns a modified copy of base. The base record is never changed.
	Apply(base domain.EmployeeRecord) (domain.EmployeeRecord, error)

	// Name returns a short identifier for this transform (e.g., "shift_end_date").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.EmployeeRecord) error
}

// ApplyTransforms applies transforms in order, each one receiving the output
// of the previous one.
func ApplyTransforms(base domain.EmployeeRecord, transforms []RecordTransform) (domain.EmployeeRecord, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.EmployeeRecord{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.EmployeeRecord{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.EmployeeRecord{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
