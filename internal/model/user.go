package model

// User represents a registered author. The password is stored only as a
// bcrypt hash; users are never deleted and the hash is never updated.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FirstName    string `json:"first_name" gorm:"size:255;not null"`
	LastName     string `json:"last_name" gorm:"size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON

	// Relations
	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:OwnerID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:OwnerID"`
}
