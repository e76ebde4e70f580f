package model

import "time"

// Comment belongs to exactly one Post and one User. Both foreign keys are
// immutable after creation; the database enforces that PostID references an
// existing post.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Text            string    `json:"text" gorm:"size:2000;not null"`
	OwnerID         uint      `json:"owner_id" gorm:"not null;index"`
	PostID          uint      `json:"post_id" gorm:"not null;index"`
	DateCreated     time.Time `json:"date_created" gorm:"autoCreateTime"`
	DateLastUpdated time.Time `json:"date_last_updated" gorm:"autoUpdateTime"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID"`
	Post  *Post `json:"-" gorm:"foreignKey:PostID"`
}
