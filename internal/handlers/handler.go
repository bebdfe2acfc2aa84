package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/courses-api/internal/models"
	"github.com/vaughan-dsouza/courses-api/internal/store"
	"github.com/vaughan-dsouza/courses-api/internal/utils"
)

type UserStore interface {
	CreateUser(ctx context.Context, in models.NewUser) (*models.User, error)
}

type CourseStore interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, in models.NewCourse) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, patch models.CoursePatch) error
	DeleteCourse(ctx context.Context, id int64) error
}

type Store interface {
	UserStore
	CourseStore
}

type Handler struct {
	Users   *UserHandler
	Courses *CourseHandler
}

func NewHandler(s Store) *Handler {
	return &Handler{
		Users:   NewUserHandler(s),
		Courses: NewCourseHandler(s),
	}
}

// Func is a handler that hands unexpected errors back instead of writing them.
type Func func(w http.ResponseWriter, r *http.Request) error

// Wrap forwards any error returned by fn to the terminal error handler.
func Wrap(fn Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			utils.WriteError(w, r, err)
		}
	}
}

// Greeting answers the root route.
func Greeting(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, "Welcome to the REST API project!")
}

// RouteNotFound is installed for unmatched paths and methods.
func RouteNotFound(w http.ResponseWriter, r *http.Request) {
	utils.JSONError(w, http.StatusNotFound, "Route not found")
}

// writeInvalid answers validation and uniqueness failures with 400 and
// reports whether it did.
func writeInvalid(w http.ResponseWriter, err error) bool {
	switch store.KindOf(err) {
	case store.KindValidation, store.KindUniqueness:
		utils.JSON(w, http.StatusBadRequest, map[string][]string{"errors": store.MessagesOf(err)})
		return true
	}
	return false
}

// courseID parses the {id} URL param; ok is false when it cannot name a row.
func courseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
