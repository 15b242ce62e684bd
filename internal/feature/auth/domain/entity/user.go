// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// Salt and PasswordHash are always written together.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Username is the login name. It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:50;not null"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:100;not null"`

	// PasswordHash is the bcrypt hash of the password combined with Salt.
	PasswordHash string `gorm:"size:255;not null"`

	// Salt is the per-user random value mixed into the password before hashing.
	Salt string `gorm:"size:64;not null"`

	CreatedAt time.Time
}
