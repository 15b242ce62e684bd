// Package entity defines the domain models for the supplements feature.
package entity

import "time"

// Supplement is a supplement a user takes. Dosage, Frequency and Notes are
// free text and may be empty.
type Supplement struct {
	ID        uint
	UserID    uint
	Name      string
	Dosage    string
	Frequency string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
