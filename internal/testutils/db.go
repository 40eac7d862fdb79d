package testutils

import (
	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// NewTestRecordID creates a record id with a random key in the given table.
func NewTestRecordID(table string) *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID(table, uuid.NewString())
	return &id
}

// RecordID creates a record id with a fixed key.
func RecordID(table, key string) *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID(table, key)
	return &id
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
