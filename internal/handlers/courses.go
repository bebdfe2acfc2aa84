package handlers

import (
	"fmt"
	"net/http"

	"github.com/vaughan-dsouza/courses-api/internal/models"
	"github.com/vaughan-dsouza/courses-api/internal/store"
	"github.com/vaughan-dsouza/courses-api/internal/utils"
)

type CourseHandler struct {
	Store CourseStore
}

func NewCourseHandler(s CourseStore) *CourseHandler {
	return &CourseHandler{Store: s}
}

// ---------------------- LIST ----------------------

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) error {
	courses, err := h.Store.ListCourses(r.Context())
	if err != nil {
		return err
	}

	utils.JSON(w, http.StatusOK, courses)
	return nil
}

// ---------------------- GET ONE ----------------------

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) error {
	id, ok := courseID(r)
	if !ok {
		utils.JSONMessage(w, http.StatusNotFound, "Course not found.")
		return nil
	}

	course, err := h.Store.CourseByID(r.Context(), id)
	if store.KindOf(err) == store.KindNotFound {
		utils.JSONMessage(w, http.StatusNotFound, "Course not found.")
		return nil
	}
	if err != nil {
		return err
	}

	utils.JSON(w, http.StatusOK, course)
	return nil
}

// ---------------------- CREATE ----------------------

// Create stores a new course. userId defaults to the caller; an explicit
// userId in the body is taken as given.
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var body models.NewCourse
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return err
	}

	if body.UserID == 0 {
		if u, ok := utils.CurrentUser(r.Context()); ok {
			body.UserID = u.ID
		}
	}

	course, err := h.Store.CreateCourse(r.Context(), body)
	if err != nil {
		if writeInvalid(w, err) {
			return nil
		}
		return err
	}

	w.Header().Set("Location", fmt.Sprintf("/api/courses/%d", course.ID))
	w.WriteHeader(http.StatusCreated)
	return nil
}

// ---------------------- UPDATE ----------------------

// Update does not check that the caller owns the course.
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := courseID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}

	var body models.CoursePatch
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return err
	}

	err := h.Store.UpdateCourse(r.Context(), id, body)
	if store.KindOf(err) == store.KindNotFound {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	if err != nil {
		if writeInvalid(w, err) {
			return nil
		}
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ---------------------- DELETE ----------------------

// Delete does not check that the caller owns the course.
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, ok := courseID(r)
	if !ok {
		utils.JSONMessage(w, http.StatusNotFound, "Unable to find course")
		return nil
	}

	err := h.Store.DeleteCourse(r.Context(), id)
	if store.KindOf(err) == store.KindNotFound {
		utils.JSONMessage(w, http.StatusNotFound, "Unable to find course")
		return nil
	}
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
