package store

import (
	"context"
	"errors"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Notes() Notes

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used during OTP verification.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken; the
	// unique indexes are the real enforcement, there is no check-then-act
	// window.
	CreateUser(ctx context.Context, u domain.User) error

	// ClearUserOTP removes the pending verification code and bumps
	// updated_at.
	ClearUserOTP(ctx context.Context, userID string) error
}

type Notes interface {
	// ListNotesByUser returns the user's notes, newest first.
	ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error)

	// GetNoteByID fetches a note only if the given user owns it.
	GetNoteByID(ctx context.Context, userID, noteID string) (domain.Note, error)

	// CreateNote inserts a new note (id is ULID).
	CreateNote(ctx context.Context, n domain.Note) error

	// UpdateNote replaces title and content of an owned note and bumps
	// updated_at. ErrNotFound when the note is absent or owned by someone
	// else.
	UpdateNote(ctx context.Context, userID, noteID, title, content string) (domain.Note, error)

	// DeleteNote removes an owned note. ErrNotFound when absent or foreign.
	DeleteNote(ctx context.Context, userID, noteID string) error
}
