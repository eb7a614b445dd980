package models

import "time"

// User is an account that owns notes. NoteIDs is the persisted note set in
// insertion order; every id in it must reference a note whose UserID equals
// this user's ID.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	NoteIDs      []string
	CreatedAt    time.Time
}
