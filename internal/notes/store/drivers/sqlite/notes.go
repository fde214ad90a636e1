package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
)

type notesRepo struct {
	db *sql.DB
}

const noteColumns = `id, user_id, title, content, created_at, updated_at`

func scanNote(row *sql.Row) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return n, nil
}

func (r *notesRepo) ListNotesByUser(ctx context.Context, userID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *notesRepo) GetNoteByID(ctx context.Context, userID, noteID string) (domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND user_id = ?`,
		noteID, userID)
	return scanNote(row)
}

func (r *notesRepo) CreateNote(ctx context.Context, n domain.Note) error {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Content, now, now,
	)
	return mapConstraint(err)
}

func (r *notesRepo) UpdateNote(ctx context.Context, userID, noteID, title, content string) (domain.Note, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		title, content, time.Now().UTC(), noteID, userID,
	)
	if err != nil {
		return domain.Note{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Note{}, err
	}
	if affected == 0 {
		return domain.Note{}, store.ErrNotFound
	}

	return r.GetNoteByID(ctx, userID, noteID)
}

func (r *notesRepo) DeleteNote(ctx context.Context, userID, noteID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, noteID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
