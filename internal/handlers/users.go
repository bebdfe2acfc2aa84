package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/courses-api/internal/models"
	"github.com/vaughan-dsouza/courses-api/internal/utils"
)

type UserHandler struct {
	Store UserStore
}

func NewUserHandler(s UserStore) *UserHandler {
	return &UserHandler{Store: s}
}

// Current returns the authenticated caller.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) error {
	u, ok := utils.CurrentUser(r.Context())
	if !ok {
		utils.JSONMessage(w, http.StatusUnauthorized, "Access Denied")
		return nil
	}

	utils.JSON(w, http.StatusOK, u.Public())
	return nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var body models.NewUser
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return err
	}

	if _, err := h.Store.CreateUser(r.Context(), body); err != nil {
		if writeInvalid(w, err) {
			return nil
		}
		return err
	}

	w.Header().Set("Location", "/")
	utils.JSONMessage(w, http.StatusCreated, "Account created!")
	return nil
}
