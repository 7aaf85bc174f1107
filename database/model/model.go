// Package model defines the database entities of the feedback board.
package model

// User is a registered account. The username doubles as the primary
// key, matching the public profile URLs.
type User struct {
	Username     string `json:"username" gorm:"primaryKey;size:20"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:50;not null"`
	FirstName    string `json:"firstName" gorm:"size:30;not null"`
	LastName     string `json:"lastName" gorm:"size:30;not null"`

	Feedbacks []Feedback `json:"-" gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE"`
}

// Feedback is one entry posted by a user. Username references the
// owning account; rows go away with their owner.
type Feedback struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title    string `json:"title" gorm:"size:100;not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
	Username string `json:"username" gorm:"size:20;not null;index"`
}
