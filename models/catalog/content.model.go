package catalog

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ContentTypeVideo = "VIDEO"
	ContentTypePDF   = "PDF"
)

// ContentItem is the leaf of the hierarchy. URL points at externally hosted
// media; Meta carries renderer hints (duration, page count, ...) the core
// stores but does not interpret.
type ContentItem struct {
	gorm.Model
	ChapterID   uint           `json:"chapter_id" gorm:"index;not null"`
	Type        string         `json:"type" gorm:"not null"` // VIDEO or PDF
	URL         string         `json:"url" gorm:"not null"`
	Description string         `json:"description"`
	Meta        datatypes.JSON `json:"meta"`
	IsDeleted   bool           `gorm:"default:false"`
}
