package models

import "time"

// UserProfile holds the self-service profile data attached 1:1 to a user.
// The unique index on UserID backs the conflict-safe get-or-create path.
type UserProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Phone      string    `gorm:"size:50" json:"phone"`
	Role       string    `gorm:"size:100" json:"role"`
	Department string    `gorm:"size:100" json:"department"`
	Photo      string    `gorm:"size:500" json:"photo"`
	Bio        string    `gorm:"type:text" json:"bio"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
