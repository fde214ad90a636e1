package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/notes/service"
	"github.com/inkwellhq/inkwell/pkg/httpx"
	"github.com/inkwellhq/inkwell/pkg/slogx"
)

// NotesHandler serves the note CRUD endpoints. All routes sit behind the
// session gate, so the owner is always present in the request context.
type NotesHandler struct {
	NotesService *service.NotesService
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleList lists the user's notes, newest first.
//
//	@Summary	List notes
//	@Tags		Notes
//	@Produce	json
//	@Success	200	{array}		NoteResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Router		/api/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.NotesService.ListNotes(ctx, user.ID)
	if err != nil {
		log.Error("failed to list notes", "user_id", user.ID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet fetches a single owned note.
//
//	@Summary	Get a note
//	@Tags		Notes
//	@Produce	json
//	@Param		id	path		string	true	"Note id"
//	@Success	200	{object}	NoteResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/notes/{id} [get].
func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	note, err := h.NotesService.GetNote(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		h.writeNoteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleCreate creates a note.
//
//	@Summary	Create a note
//	@Tags		Notes
//	@Accept		json
//	@Produce	json
//	@Param		body	body		noteRequest	true	"Title and content"
//	@Success	201		{object}	NoteResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Router		/api/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.NotesService.CreateNote(ctx, user.ID, req.Title, req.Content)
	if err != nil {
		h.writeNoteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNoteResponse(note))
}

// HandleUpdate replaces a note's title and content.
//
//	@Summary	Update a note
//	@Tags		Notes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Note id"
//	@Param		body	body		noteRequest	true	"Title and content"
//	@Success	200		{object}	NoteResponse
//	@Failure	400		{object}	httpx.ErrorResponse
//	@Failure	401		{object}	httpx.ErrorResponse
//	@Failure	404		{object}	httpx.ErrorResponse
//	@Router		/api/notes/{id} [put].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.NotesService.UpdateNote(ctx, user.ID, r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		h.writeNoteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(note))
}

// HandleDelete removes a note.
//
//	@Summary	Delete a note
//	@Tags		Notes
//	@Produce	json
//	@Param		id	path		string	true	"Note id"
//	@Success	200	{object}	httpx.MessageResponse
//	@Failure	401	{object}	httpx.ErrorResponse
//	@Failure	404	{object}	httpx.ErrorResponse
//	@Router		/api/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.NotesService.DeleteNote(ctx, user.ID, r.PathValue("id")); err != nil {
		h.writeNoteError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.MessageResponse{Message: "Note deleted successfully"})
}

func (h *NotesHandler) writeNoteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNoteNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, service.ErrInvalidNote):
		httpx.WriteError(w, http.StatusBadRequest, "Title and content are required")
	default:
		slogx.FromContext(r.Context()).Error("note operation failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
