package models

// Category groups events; listings can filter on it.
type Category struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"uniqueIndex"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`
}
