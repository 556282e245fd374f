package models

import "time"

// MenuImage stores the S3 key of the photo uploaded for a catalog item
type MenuImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemName  string    `gorm:"size:50;uniqueIndex;not null" json:"item_name"`
	S3Key     string    `gorm:"size:255;not null" json:"s3_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the MenuImage model
func (MenuImage) TableName() string {
	return "menu_images"
}
