package domain

import (
	"time"
)

// User represents an account whose activity document is synced to the server.
// ID is backend specific: a Mongo ObjectID hex string or a UUID in Postgres.
type User struct {
	ID           string    `bson:"-" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`    // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Profile is the public view returned by the /me endpoint.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name}
}
