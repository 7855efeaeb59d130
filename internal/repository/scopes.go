package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/taskhub-api/internal/utils"
)

// Paginate applies offset and limit when the request asked for a page.
func Paginate(page utils.PaginationParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !page.Enabled() {
			return db
		}
		return db.Offset(page.Offset).Limit(page.Limit)
	}
}

// Preload applies each named association preload.
func Preload(associations ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, a := range associations {
			db = db.Preload(a)
		}
		return db
	}
}

// deleteByID removes one row and reports a missing row as gorm.ErrRecordNotFound.
func deleteByID(tx *gorm.DB, model interface{}, id uint64) error {
	result := tx.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
