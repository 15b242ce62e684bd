// Package entity defines the domain models for the weight feature.
package entity

import "time"

// WeightRecord is one body-weight measurement. A user has at most one
// record per calendar date.
type WeightRecord struct {
	ID         uint
	UserID     uint
	Weight     float64   // kg, two decimal places
	RecordDate time.Time // UTC midnight of the measured day
	CreatedAt  time.Time
}

// Goal is the single target weight of a user.
type Goal struct {
	ID           uint
	UserID       uint
	TargetWeight float64
	TargetDate   *time.Time // nil when no deadline is set
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
