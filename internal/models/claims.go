package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity payload carried by both access and refresh tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string   `json:"userId"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	Facilities []string `json:"facilities"`
}
