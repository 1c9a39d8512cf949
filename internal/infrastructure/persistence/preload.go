package persistence

import (
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// withLoads translates the requested association loads into GORM preload
// clauses. Load values map one-to-one onto association paths.
func withLoads(db *gorm.DB, loads []shared.Load) *gorm.DB {
	for _, load := range loads {
		db = db.Preload(string(load))
	}
	return db
}
