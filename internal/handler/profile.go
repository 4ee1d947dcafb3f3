package handler

import (
	"net/http"

	"github.com/studyshare/studyshare/internal/ctxkeys"
	"github.com/studyshare/studyshare/internal/service"
	"github.com/studyshare/studyshare/internal/validation"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.ByUser(r.Context(), actorFrom(r), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

type updateNamesRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *ProfileHandler) UpdateNames(w http.ResponseWriter, r *http.Request) {
	var req updateNamesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.profileService.UpdateNames(r.Context(), actorFrom(r), req.FirstName, req.LastName)
	if err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	_, header, err := r.FormFile("avatar")
	if err != nil {
		respondErrorMessage(w, http.StatusBadRequest, "avatar file is required")
		return
	}

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		respondError(w, err)
		return
	}

	up, file, err := formUpload(r, "avatar")
	if err != nil || up == nil {
		respondErrorMessage(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() { _ = file.Close() }()

	profile, err := h.profileService.SetAvatar(r.Context(), actorFrom(r), *up)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
