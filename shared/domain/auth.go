package domain

import "github.com/golang-jwt/jwt/v5"

type Credentials struct {
	Email    Email
	Password Password
}

// Claims is the identity payload carried by a session token.
// Serialized as {"id", "email", "iat", "exp"}.
type Claims struct {
	Id    UserId `json:"id"`
	Email Email  `json:"email"`
	jwt.RegisteredClaims
}
