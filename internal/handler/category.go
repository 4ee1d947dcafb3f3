package handler

import (
	"net/http"

	"github.com/studyshare/studyshare/internal/model"
	"github.com/studyshare/studyshare/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	if kind != "" && kind != model.CategoryKindNote && kind != model.CategoryKindAnnouncement {
		respondErrorMessage(w, http.StatusBadRequest, "invalid category kind")
		return
	}

	categories, err := h.categoryService.Categories(r.Context(), actorFrom(r), kind)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}
