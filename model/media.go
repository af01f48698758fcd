package model

import "time"

// MediaAsset records an uploaded file stored in object storage.
type MediaAsset struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Kind       string    `json:"kind" gorm:"not null"` // badge_icon, lesson_thumbnail
	OwnerID    string    `json:"owner_id" gorm:"not null;index"`
	ObjectName string    `json:"object_name" gorm:"not null"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	FileSize   int64     `json:"file_size"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
