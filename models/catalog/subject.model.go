package catalog

import "gorm.io/gorm"

type Subject struct {
	gorm.Model
	BatchID   uint   `json:"batch_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	IsDeleted bool   `gorm:"default:false"`
}
