package observation

import (
	"fmt"

	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

// ErrNotFound is returned when no observation exists for an identifier.
var ErrNotFound = errors.NewStd("observation not found")

// ErrVersionConflict is matched by every *VersionConflictError via errors.Is.
var ErrVersionConflict = errors.NewStd("observation version conflict")

// VersionConflictError reports an optimistic concurrency mismatch. The
// caller may re-read the observation and retry with Actual.
type VersionConflictError struct {
	ID       uint
	Expected int
	Actual   int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on observation %d: expected %d, but was %d", e.ID, e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrVersionConflict) match.
func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

// ErrorCategory implements errors.CategorizedError.
func (e *VersionConflictError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryConflict
}

// NotFoundError builds the categorized not-found error for id.
func NotFoundError(component string, id uint) error {
	return errors.New(fmt.Errorf("observation %d: %w", id, ErrNotFound)).
		Component(component).
		Category(errors.CategoryNotFound).
		Context("observation_id", id).
		Build()
}
