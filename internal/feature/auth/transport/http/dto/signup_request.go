// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "time"

// RegisterReq represents the request body for the /register endpoint.
// Presence and strength checks are done by the usecase so that failures are
// reported in a fixed order.
type RegisterReq struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirmPassword"`
}

// DeleteAccountReq confirms account deletion with the current password.
type DeleteAccountReq struct {
	Password string `json:"password" form:"password"`
}

// UserRes is the public view of a user.
type UserRes struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
