package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
	"github.com/inkwellhq/inkwell/pkg/idx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

var (
	ErrInvalidNote  = errors.New("note title and content are required")
	ErrNoteNotFound = errors.New("note not found")
)

// NotesService performs note CRUD. Every operation is scoped to the
// owning user; a foreign note id behaves exactly like a missing one.
type NotesService struct {
	Store store.Store
}

// ListNotes returns the user's notes, newest first.
func (s *NotesService) ListNotes(ctx context.Context, userID string) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesByUser(ctx, userID)
}

// GetNote fetches one owned note.
func (s *NotesService) GetNote(ctx context.Context, userID, noteID string) (domain.Note, error) {
	note, err := s.Store.Notes().GetNoteByID(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return note, nil
}

// CreateNote creates a note for the user.
func (s *NotesService) CreateNote(ctx context.Context, userID, title, content string) (domain.Note, error) {
	log := slogx.FromContext(ctx)

	if title == "" || content == "" {
		return domain.Note{}, ErrInvalidNote
	}

	note := domain.Note{
		ID:      idx.New().String(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if err := s.Store.Notes().CreateNote(ctx, note); err != nil {
		log.Error("failed to create note",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.Note{}, err
	}

	return s.Store.Notes().GetNoteByID(ctx, userID, note.ID)
}

// UpdateNote replaces title and content of an owned note.
func (s *NotesService) UpdateNote(ctx context.Context, userID, noteID, title, content string) (domain.Note, error) {
	if title == "" || content == "" {
		return domain.Note{}, ErrInvalidNote
	}

	note, err := s.Store.Notes().UpdateNote(ctx, userID, noteID, title, content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Note{}, ErrNoteNotFound
		}
		return domain.Note{}, err
	}
	return note, nil
}

// DeleteNote removes an owned note.
func (s *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	err := s.Store.Notes().DeleteNote(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}
