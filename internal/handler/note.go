package handler

import (
	"errors"
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type NoteHandler struct {
	noteService *service.NoteService
	attachments *service.AttachmentService
}

func NewNoteHandler(noteService *service.NoteService, attachments *service.AttachmentService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		attachments: attachments,
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	up, file, err := formUpload(r, "attachment")
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid attachment")
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	note, err := h.noteService.Create(r.Context(), actorFrom(r),
		r.FormValue("title"), r.FormValue("body"), optionalFormValue(r, "category_id"), up)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidCategory) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.Notes(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Show(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.ByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	up, file, err := formUpload(r, "attachment")
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid attachment")
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	note, err := h.noteService.Update(r.Context(), actorFrom(r), r.PathValue("id"),
		r.FormValue("title"), r.FormValue("body"), optionalFormValue(r, "category_id"), up)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidCategory) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.noteService.Delete(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Attachment returns a short-lived download URL for the note's attachment.
func (h *NoteHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.ByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if !note.Attachment.Bound() {
		respondErrorMessage(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, attachmentURLResponse{URL: h.attachments.URL(r.Context(), note.Attachment)})
}

type attachmentURLResponse struct {
	URL string `json:"url"`
}

func optionalFormValue(r *http.Request, field string) *string {
	v := r.FormValue(field)
	if v == "" {
		return nil
	}
	return &v
}
