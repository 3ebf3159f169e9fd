package catalog

import "gorm.io/gorm"

type Chapter struct {
	gorm.Model
	SubjectID uint   `json:"subject_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	IsDeleted bool   `gorm:"default:false"`
}
