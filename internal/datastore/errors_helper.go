// Package datastore provides error handling helpers for database operations
package datastore

import (
	"github.com/cosmiccatalog/cosmic-catalog/internal/errors"
)

// dbError creates a properly categorized database error with context
func dbError(err error, operation, priority string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	if priority != "" {
		builder = builder.Priority(priority)
	}

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// validationError creates a validation error for bad query parameters
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component("datastore").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", value).
		Build()
}

// connectionError wraps failures to open or close the database
func connectionError(err error, operation, dbType string) error {
	return errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Priority(errors.PriorityCritical).
		Context("operation", operation).
		Context("db_type", dbType).
		Build()
}
