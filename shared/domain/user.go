package domain

import "time"

// User is a row of the credential store. PassHash never leaves the backend.
type User struct {
	Id        UserId    `json:"id"`
	Email     Email     `json:"email"`
	PassHash  string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
