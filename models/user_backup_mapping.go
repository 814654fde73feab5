package models

import "time"

// UserBackupMapping links a producer to the backup item they worked on and
// records who created the link. The producer set of a backup item is always
// replaced wholesale (see BackupStatusRepository.SyncProducers); duplicate
// (user, backup) pairs within one sync are kept as-is. Mappings are not
// removed when a backup item is soft-deleted.
type UserBackupMapping struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	BackupStatusID uint      `json:"backup_status_id" gorm:"not null;index"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      uint      `json:"created_by" gorm:"not null"`
}
