// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// Annotation is the predicate function for annotation builders.
type Annotation func(*sql.Selector)

// Document is the predicate function for document builders.
type Document func(*sql.Selector)

// ProcessingJob is the predicate function for processingjob builders.
type ProcessingJob func(*sql.Selector)

// User is the predicate function for user builders.
type User func(*sql.Selector)
