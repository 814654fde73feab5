package models

import "time"

// BackupStatus tracks the completion of the four backup stages (camera
// originals, master files, cleaned files, final products) for one content
// item. Each stage carries a completion flag and the id of the user who
// verified it. Checker and deleted-by ids are weak references into users;
// they are resolved by explicit joins in the data-access layer rather than
// association preloading.
type BackupStatus struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	EventName           *string    `json:"event_name" gorm:"size:100"`
	DisplayedDate       *time.Time `json:"displayed_date"`
	Name                string     `json:"name" gorm:"size:100;not null"`
	Description         *string    `json:"description" gorm:"size:1000"`
	Cam                 *bool      `json:"cam"`
	CamChecker          *uint      `json:"cam_checker"`
	Master              *bool      `json:"master"`
	MasterChecker       *uint      `json:"master_checker"`
	Clean               *bool      `json:"clean"`
	CleanChecker        *uint      `json:"clean_checker"`
	FinalProduct        *bool      `json:"final_product"`
	FinalProductChecker *uint      `json:"final_product_checker"`
	Deleted             bool       `json:"-" gorm:"not null;default:false"`
	DeletedBy           *uint      `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}

// BackupProgress returns the completion flag of each stage, with null flags
// counted as incomplete.
func (b *BackupStatus) BackupProgress() map[string]bool {
	return map[string]bool{
		"cam":           b.Cam != nil && *b.Cam,
		"master":        b.Master != nil && *b.Master,
		"clean":         b.Clean != nil && *b.Clean,
		"final_product": b.FinalProduct != nil && *b.FinalProduct,
	}
}

// IsFullyBackedUp reports whether all four stages are complete.
func (b *BackupStatus) IsFullyBackedUp() bool {
	for _, done := range b.BackupProgress() {
		if !done {
			return false
		}
	}
	return true
}
