package handler

import (
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.Submissions(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, submissions)
}

// Submit finalizes a draft. The transition is one-way.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionService.Submit(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

func (h *SubmissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.submissionService.DeleteDraft(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
