// internal/repository/repository.go
package repository

import (
	"gorm.io/gorm"
)

// window applies the optional pagination bounds. Absent values impose no
// slicing; the caller reports totals counted without the window.
func window(db *gorm.DB, offset, limit *int) *gorm.DB {
	if offset != nil {
		db = db.Offset(*offset)
	}
	if limit != nil {
		db = db.Limit(*limit)
	}
	return db
}
