package specification

import "gorm.io/gorm"

// Specification narrows a conversation or system-log query.
// The admin listings compose BySessionId, ByLevel, OrderBy and Pagination.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Apply folds specs onto db in order
func Apply(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}
