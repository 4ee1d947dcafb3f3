package handler

import (
	"errors"
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

type feedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	feedback, err := h.feedbackService.Create(r.Context(), actorFrom(r), req.Subject, req.Message, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrSubjectRequired) || errors.Is(err, service.ErrInvalidFeedbackType) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, feedback)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.feedbackService.ByUser(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

func (h *FeedbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	feedback, err := h.feedbackService.Update(r.Context(), actorFrom(r), r.PathValue("id"), req.Subject, req.Message, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrSubjectRequired) || errors.Is(err, service.ErrInvalidFeedbackType) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, feedback)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.feedbackService.Delete(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
