package model

import "time"

// Post is an owned blog entry. OwnerID is immutable after creation;
// DateLastUpdated is refreshed on every successful update.
type Post struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"size:255;not null;index"`
	Description     string    `json:"description" gorm:"size:2000"`
	OwnerID         uint      `json:"owner_id" gorm:"not null;index"`
	DateCreated     time.Time `json:"date_created" gorm:"autoCreateTime"`
	DateLastUpdated time.Time `json:"date_last_updated" gorm:"autoUpdateTime"`

	Owner    *User     `json:"-" gorm:"foreignKey:OwnerID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}
