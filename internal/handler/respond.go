package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/studyshare/studyshare/internal/apperr"
	"github.com/studyshare/studyshare/internal/ctxkeys"
	"github.com/studyshare/studyshare/internal/policy"
	"github.com/studyshare/studyshare/internal/service"
	"github.com/studyshare/studyshare/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondErrorMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// respondError maps the error taxonomy onto HTTP statuses. Anything it does
// not recognize is an internal failure.
func respondError(w http.ResponseWriter, err error) {
	var lifecycleErr *apperr.LifecycleError
	var validationErr *validation.Error

	switch {
	case errors.Is(err, apperr.ErrPermissionDenied):
		respondErrorMessage(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, apperr.ErrNotFound):
		respondErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		respondErrorMessage(w, http.StatusConflict, "conflict")
	case errors.Is(err, apperr.ErrPayloadTooLarge):
		respondErrorMessage(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.As(err, &lifecycleErr):
		respondErrorMessage(w, http.StatusUnprocessableEntity, lifecycleErr.Reason)
	case errors.As(err, &validationErr):
		respondErrorMessage(w, http.StatusBadRequest, validationErr.Error())
	default:
		slog.Error("request failed", "error", err)
		respondErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// actorFrom builds the policy actor for the request. Unauthenticated
// requests evaluate as the anonymous actor.
func actorFrom(r *http.Request) policy.Actor {
	user := ctxkeys.User(r.Context())
	if user == nil {
		return policy.Anonymous()
	}
	return policy.Actor{ID: user.ID}
}

// maxUploadMemory caps the in-memory portion of multipart parsing; larger
// parts spill to temp files.
const maxUploadMemory = 10 << 20

// formUpload extracts an optional file part. A missing part returns
// (nil, nil, nil); the caller must close the returned file when present.
func formUpload(r *http.Request, field string) (*service.Upload, multipart.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	return &service.Upload{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Size:      header.Size,
		Content:   file,
	}, file, nil
}
