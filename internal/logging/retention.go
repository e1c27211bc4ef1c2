package logging

import (
	"time"

	"github.com/modxnet/modxnet-backend/internal/models"
	"gorm.io/gorm"
)

// PurgeOld deletes system_logs rows older than the retention window and
// reports how many were removed.
func PurgeOld(db *gorm.DB, now time.Time, retention time.Duration) (int64, error) {
	result := db.Where("timestamp < ?", now.Add(-retention)).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
