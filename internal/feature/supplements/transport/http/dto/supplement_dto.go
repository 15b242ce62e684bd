// Package dto defines request and response bodies for the supplements endpoints.
package dto

import (
	"time"

	"health_backend/internal/feature/supplements/domain/entity"
)

type SupplementReq struct {
	Name      string `json:"supplement_name" form:"supplement_name"`
	Dosage    string `json:"dosage" form:"dosage"`
	Frequency string `json:"frequency" form:"frequency"`
	Notes     string `json:"notes" form:"notes"`
}

type SupplementRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"supplement_name"`
	Dosage    string    `json:"dosage,omitempty"`
	Frequency string    `json:"frequency,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToSupplementRes(s entity.Supplement) SupplementRes {
	return SupplementRes{
		ID:        s.ID,
		Name:      s.Name,
		Dosage:    s.Dosage,
		Frequency: s.Frequency,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToSupplementList(ss []entity.Supplement) []SupplementRes {
	out := make([]SupplementRes, 0, len(ss))
	for _, s := range ss {
		out = append(out, ToSupplementRes(s))
	}
	return out
}
