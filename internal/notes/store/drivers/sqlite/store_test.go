package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
	"github.com/inkwellhq/inkwell/internal/notes/store/drivers/sqlite"
	"github.com/inkwellhq/inkwell/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(username, email string) domain.User {
	otp := "123456"
	expiry := time.Now().Add(5 * time.Minute).UTC()
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash",
		OTP:          &otp,
		OTPExpiresAt: &expiry,
	}
}

func TestUsersRepo_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := testUser("alice", "alice@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.Equal(t, "alice@example.com", byID.Email)
	require.NotNil(t, byID.OTP)
	require.NotNil(t, byID.OTPExpiresAt)
	require.False(t, byID.CreatedAt.IsZero())

	byUsername, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byEmail, err := st.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
}

func TestUsersRepo_NotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersRepo_UniqueConstraints(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, testUser("alice", "alice@example.com")))

	t.Run("duplicate username", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, testUser("alice", "other@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := st.Users().CreateUser(ctx, testUser("bob", "alice@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestUsersRepo_ClearOTP(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := testUser("alice", "alice@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	require.NoError(t, st.Users().ClearUserOTP(ctx, u.ID))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTP)
	require.Nil(t, got.OTPExpiresAt)

	require.ErrorIs(t, st.Users().ClearUserOTP(ctx, idx.New().String()), store.ErrNotFound)
}

func TestNotesRepo_CRUDScopedToOwner(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	owner := testUser("alice", "alice@example.com")
	other := testUser("bob", "bob@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, owner))
	require.NoError(t, st.Users().CreateUser(ctx, other))

	note := domain.Note{
		ID:      idx.New().String(),
		UserID:  owner.ID,
		Title:   "groceries",
		Content: "milk, eggs",
	}
	require.NoError(t, st.Notes().CreateNote(ctx, note))

	t.Run("owner can read", func(t *testing.T) {
		got, err := st.Notes().GetNoteByID(ctx, owner.ID, note.ID)
		require.NoError(t, err)
		require.Equal(t, "groceries", got.Title)
	})

	t.Run("other user cannot read", func(t *testing.T) {
		_, err := st.Notes().GetNoteByID(ctx, other.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		_, err := st.Notes().UpdateNote(ctx, other.ID, note.ID, "stolen", "x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("owner can update", func(t *testing.T) {
		updated, err := st.Notes().UpdateNote(ctx, owner.ID, note.ID, "groceries", "milk, eggs, bread")
		require.NoError(t, err)
		require.Equal(t, "milk, eggs, bread", updated.Content)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		require.ErrorIs(t, st.Notes().DeleteNote(ctx, other.ID, note.ID), store.ErrNotFound)
	})

	t.Run("owner can delete", func(t *testing.T) {
		require.NoError(t, st.Notes().DeleteNote(ctx, owner.ID, note.ID))
		_, err := st.Notes().GetNoteByID(ctx, owner.ID, note.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestNotesRepo_ListNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	owner := testUser("alice", "alice@example.com")
	require.NoError(t, st.Users().CreateUser(ctx, owner))

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, st.Notes().CreateNote(ctx, domain.Note{
			ID:      idx.New().String(),
			UserID:  owner.ID,
			Title:   title,
			Content: "body",
		}))
	}

	notes, err := st.Notes().ListNotesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	// Ties on created_at break on the ULID, which is time-ordered too.
	require.Equal(t, "third", notes[0].Title)
	require.Equal(t, "first", notes[2].Title)

	empty, err := st.Notes().ListNotesByUser(ctx, idx.New().String())
	require.NoError(t, err)
	require.Empty(t, empty)
}
