package handler

import (
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

// AssignmentHandler serves the assignment catalog and the caller's
// submissions against it.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	submissionService *service.SubmissionService
	attachments       *service.AttachmentService
}

func NewAssignmentHandler(
	assignmentService *service.AssignmentService,
	submissionService *service.SubmissionService,
	attachments *service.AttachmentService,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		submissionService: submissionService,
		attachments:       attachments,
	}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.Assignments(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Show(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.assignmentService.ByID(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assignment)
}

// UpsertDraft starts a draft submission for the assignment or updates the
// caller's existing one.
func (h *AssignmentHandler) UpsertDraft(w http.ResponseWriter, r *http.Request) {
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

	submission, err := h.submissionService.StartOrUpdateDraft(r.Context(), actorFrom(r),
		r.PathValue("id"), r.FormValue("body"), up)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

func (h *AssignmentHandler) ShowSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionService.ByAssignment(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

func (h *AssignmentHandler) SubmissionAttachment(w http.ResponseWriter, r *http.Request) {
	submission, err := h.submissionService.ByAssignment(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	if !submission.Attachment.Bound() {
		respondErrorMessage(w, http.StatusNotFound, "not found")
		return
	}

	respondJSON(w, http.StatusOK, attachmentURLResponse{URL: h.attachments.URL(r.Context(), submission.Attachment)})
}
