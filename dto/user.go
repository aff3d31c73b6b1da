package dto

import "time"

// LoginInput is the back-office login payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthInput carries the ID token issued by Google sign-in.
type GoogleAuthInput struct {
	TokenID string `json:"tokenId" binding:"required"`
}

// UserLoginResponse is the account profile returned next to the access token.
type UserLoginResponse struct {
	UserID    uint      `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	UserRole  int       `json:"userRole"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
