package catalog

import "gorm.io/gorm"

// Batch is a course offering, the root of the content hierarchy.
type Batch struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}
