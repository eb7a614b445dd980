package models

import "time"

// Note is a short text record owned by exactly one user. UserID is set at
// creation and never changes.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
}
