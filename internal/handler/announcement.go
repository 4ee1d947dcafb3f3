package handler

import (
	"errors"
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	commentService      *service.CommentService
	attachments         *service.AttachmentService
}

func NewAnnouncementHandler(
	announcementService *service.AnnouncementService,
	commentService *service.CommentService,
	attachments *service.AttachmentService,
) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		commentService:      commentService,
		attachments:         attachments,
	}
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	announcement, err := h.announcementService.Create(r.Context(), actorFrom(r),
		r.FormValue("title"), r.FormValue("body"), optionalFormValue(r, "category_id"), up)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidCategory) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.Announcements(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Show(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.announcementService.ByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	announcement, err := h.announcementService.Update(r.Context(), actorFrom(r), r.PathValue("id"),
		r.FormValue("title"), r.FormValue("body"), optionalFormValue(r, "category_id"), up)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) || errors.Is(err, service.ErrInvalidCategory) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.announcementService.Delete(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AnnouncementHandler) Attachment(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.announcementService.ByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if !announcement.Attachment.Bound() {
		respondErrorMessage(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, attachmentURLResponse{URL: h.attachments.URL(r.Context(), announcement.Attachment)})
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *AnnouncementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ByAnnouncement(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

func (h *AnnouncementHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), actorFrom(r), r.PathValue("id"), req.Body)
	if err != nil {
		if errors.Is(err, service.ErrBodyRequired) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}
