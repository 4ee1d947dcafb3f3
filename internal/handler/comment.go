package handler

import (
	"errors"
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Update(r.Context(), actorFrom(r), r.PathValue("id"), req.Body)
	if err != nil {
		if errors.Is(err, service.ErrBodyRequired) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.commentService.Delete(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
