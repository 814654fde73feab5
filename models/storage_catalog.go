package models

// StorageCatalog records where a media activity is archived (storage
// location, category, and the year/month of the activity). Catalog rows are
// hard-deleted; there is no soft-delete flag or audit trail.
type StorageCatalog struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Storage      string  `json:"storage" gorm:"size:20;not null"`
	Category     string  `json:"category" gorm:"size:20;not null;default:ACTIVITY"`
	Year         *int    `json:"year"`
	Month        *int    `json:"month"`
	ActivityName string  `json:"activity_name" gorm:"size:250;not null"`
	Description  *string `json:"description" gorm:"size:500"`
}
