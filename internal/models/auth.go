package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the authenticated practitioner identity.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest is the credential payload for the single-practitioner login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
