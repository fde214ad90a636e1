package domain

import "time"

// Note is owned by exactly one user and only ever visible to its owner.
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
