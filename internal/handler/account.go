package handler

import (
	"errors"
	"net/http"

	"github.com/studyshare/studyshare/internal/service"
)

type AccountHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		userService: userService,
	}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.userService.UpdatePassword(r.Context(), actorFrom(r), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCurrentPassword) {
			respondErrorMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount removes the signed-in user, their stored objects, and every
// row that hangs off the account.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.userService.DeleteAccount(r.Context(), actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
