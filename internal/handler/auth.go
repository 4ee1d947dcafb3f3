package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/studyshare/studyshare/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	jwtExpiry   time.Duration
}

func NewAuthHandler(authService *service.AuthService, jwtExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtExpiry:   jwtExpiry,
	}
}

type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.SignUp(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			respondErrorMessage(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		respondError(w, err)
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.jwtExpiry))

	respondJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondErrorMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		respondError(w, err)
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.jwtExpiry))

	respondJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
