package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/vaughan-dsouza/courses-api/internal/models"
	"github.com/vaughan-dsouza/courses-api/internal/store"
	"github.com/vaughan-dsouza/courses-api/internal/utils"
)

type stubStore struct {
	createUser   func(models.NewUser) (*models.User, error)
	listCourses  func() ([]models.Course, error)
	courseByID   func(int64) (*models.Course, error)
	createCourse func(models.NewCourse) (*models.Course, error)
	updateCourse func(int64, models.CoursePatch) error
	deleteCourse func(int64) error
}

func (s *stubStore) CreateUser(_ context.Context, in models.NewUser) (*models.User, error) {
	return s.createUser(in)
}

func (s *stubStore) ListCourses(context.Context) ([]models.Course, error) {
	return s.listCourses()
}

func (s *stubStore) CourseByID(_ context.Context, id int64) (*models.Course, error) {
	return s.courseByID(id)
}

func (s *stubStore) CreateCourse(_ context.Context, in models.NewCourse) (*models.Course, error) {
	return s.createCourse(in)
}

func (s *stubStore) UpdateCourse(_ context.Context, id int64, p models.CoursePatch) error {
	return s.updateCourse(id, p)
}

func (s *stubStore) DeleteCourse(_ context.Context, id int64) error {
	return s.deleteCourse(id)
}

// serve routes a single request through fn, with {id} bound when given.
func serve(fn Func, method, pattern, target, body string, caller *models.User) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, Wrap(fn))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != nil {
		req = req.WithContext(utils.WithCurrentUser(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUsersCreate(t *testing.T) {
	var got models.NewUser
	h := NewUserHandler(&stubStore{createUser: func(in models.NewUser) (*models.User, error) {
		got = in
		return &models.User{ID: 1}, nil
	}})

	rec := serve(h.Create, http.MethodPost, "/api/users", "/api/users",
		`{"firstName":"Ada","lastName":"Lovelace","emailAddress":"a@b.com","password":"secret"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"message":"Account created!"}`, rec.Body.String())
	assert.Equal(t, "secret", got.Password)
	assert.Equal(t, "a@b.com", got.EmailAddress)
}

func TestUsersCreate_InvalidAndDuplicate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &store.Error{Kind: store.KindValidation, Messages: []string{"Please provide a first name."}}, `{"errors":["Please provide a first name."]}`},
		{"uniqueness", &store.Error{Kind: store.KindUniqueness, Messages: []string{"The email already exists. Please provide a new email."}}, `{"errors":["The email already exists. Please provide a new email."]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubStore{createUser: func(models.NewUser) (*models.User, error) { return nil, tt.err }})

			rec := serve(h.Create, http.MethodPost, "/api/users", "/api/users", `{}`, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestUsersCreate_UnexpectedErrorGoesToErrorHandler(t *testing.T) {
	h := NewUserHandler(&stubStore{createUser: func(models.NewUser) (*models.User, error) {
		return nil, errors.New("db error: connection reset")
	}})

	rec := serve(h.Create, http.MethodPost, "/api/users", "/api/users", `{}`, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"db error: connection reset"}`, rec.Body.String())
}

func TestUsersCreate_MalformedJSON(t *testing.T) {
	h := NewUserHandler(&stubStore{})

	rec := serve(h.Create, http.MethodPost, "/api/users", "/api/users", `{"firstName":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestUsersCurrent(t *testing.T) {
	h := NewUserHandler(&stubStore{})

	caller := &models.User{ID: 4, FirstName: "Ada", LastName: "Lovelace", EmailAddress: "a@b.com", Password: "$2a$10$x"}
	rec := serve(h.Current, http.MethodGet, "/api/users", "/api/users", "", caller)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":4,"firstName":"Ada","lastName":"Lovelace","emailAddress":"a@b.com"}`, rec.Body.String())

	rec = serve(h.Current, http.MethodGet, "/api/users", "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCoursesList_EmptyIsArray(t *testing.T) {
	h := NewCourseHandler(&stubStore{listCourses: func() ([]models.Course, error) { return []models.Course{}, nil }})

	rec := serve(h.List, http.MethodGet, "/api/courses", "/api/courses", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCoursesGet(t *testing.T) {
	h := NewCourseHandler(&stubStore{courseByID: func(id int64) (*models.Course, error) {
		if id != 1 {
			return nil, store.ErrNotFound
		}
		return &models.Course{ID: 1, Title: "Go", UserID: 7, Owner: models.PublicUser{ID: 7, FirstName: "Ada"}}, nil
	}})

	rec := serve(h.Get, http.MethodGet, "/api/courses/{id}", "/api/courses/1", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":{"id":7,"firstName":"Ada"`)

	for _, target := range []string{"/api/courses/2", "/api/courses/abc"} {
		rec = serve(h.Get, http.MethodGet, "/api/courses/{id}", target, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.JSONEq(t, `{"message":"Course not found."}`, rec.Body.String())
	}
}

func TestCoursesCreate_DefaultsOwnerToCaller(t *testing.T) {
	var got models.NewCourse
	h := NewCourseHandler(&stubStore{createCourse: func(in models.NewCourse) (*models.Course, error) {
		got = in
		return &models.Course{ID: 12}, nil
	}})

	rec := serve(h.Create, http.MethodPost, "/api/courses", "/api/courses",
		`{"title":"Go","description":"Learn Go"}`, &models.User{ID: 9})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/courses/12", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int64(9), got.UserID)
}

func TestCoursesCreate_ExplicitOwnerKept(t *testing.T) {
	var got models.NewCourse
	h := NewCourseHandler(&stubStore{createCourse: func(in models.NewCourse) (*models.Course, error) {
		got = in
		return &models.Course{ID: 1}, nil
	}})

	serve(h.Create, http.MethodPost, "/api/courses", "/api/courses",
		`{"title":"Go","description":"Learn Go","userId":3}`, &models.User{ID: 9})
	assert.Equal(t, int64(3), got.UserID)
}

func TestCoursesCreate_Validation(t *testing.T) {
	h := NewCourseHandler(&stubStore{createCourse: func(models.NewCourse) (*models.Course, error) {
		return nil, &store.Error{Kind: store.KindValidation, Messages: []string{"Please provide a title."}}
	}})

	rec := serve(h.Create, http.MethodPost, "/api/courses", "/api/courses", `{}`, &models.User{ID: 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["Please provide a title."]}`, rec.Body.String())
}

func TestCoursesUpdate(t *testing.T) {
	var gotID int64
	var gotPatch models.CoursePatch
	h := NewCourseHandler(&stubStore{updateCourse: func(id int64, p models.CoursePatch) error {
		gotID, gotPatch = id, p
		if id == 404 {
			return store.ErrNotFound
		}
		return nil
	}})

	rec := serve(h.Update, http.MethodPut, "/api/courses/{id}", "/api/courses/5", `{"title":"New"}`, &models.User{ID: 1})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, int64(5), gotID)
	assert.Equal(t, models.Some("New"), gotPatch.Title)
	assert.False(t, gotPatch.Description.Set)

	rec = serve(h.Update, http.MethodPut, "/api/courses/{id}", "/api/courses/5", `{"title":null}`, &models.User{ID: 1})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, gotPatch.Title.Set)
	assert.Nil(t, gotPatch.Title.Value)

	rec = serve(h.Update, http.MethodPut, "/api/courses/{id}", "/api/courses/404", `{"title":"New"}`, &models.User{ID: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCoursesUpdate_Validation(t *testing.T) {
	h := NewCourseHandler(&stubStore{updateCourse: func(int64, models.CoursePatch) error {
		return &store.Error{Kind: store.KindValidation, Messages: []string{"Please provide a description."}}
	}})

	rec := serve(h.Update, http.MethodPut, "/api/courses/{id}", "/api/courses/5", `{"description":""}`, &models.User{ID: 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"errors":["Please provide a description."]}`, rec.Body.String())
}

func TestCoursesDelete(t *testing.T) {
	h := NewCourseHandler(&stubStore{deleteCourse: func(id int64) error {
		if id == 1 {
			return nil
		}
		return store.ErrNotFound
	}})

	rec := serve(h.Delete, http.MethodDelete, "/api/courses/{id}", "/api/courses/1", "", &models.User{ID: 1})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(h.Delete, http.MethodDelete, "/api/courses/{id}", "/api/courses/2", "", &models.User{ID: 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Unable to find course"}`, rec.Body.String())
}

func TestCourses_IDBeyondInt64IsNotFound(t *testing.T) {
	called := false
	h := NewCourseHandler(&stubStore{
		courseByID:   func(int64) (*models.Course, error) { called = true; return nil, nil },
		updateCourse: func(int64, models.CoursePatch) error { called = true; return nil },
		deleteCourse: func(int64) error { called = true; return nil },
	})
	const target = "/api/courses/9223372036854775808"
	caller := &models.User{ID: 1}

	rec := serve(h.Get, http.MethodGet, "/api/courses/{id}", target, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Course not found."}`, rec.Body.String())

	rec = serve(h.Update, http.MethodPut, "/api/courses/{id}", target, `{"title":"Go"}`, caller)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h.Delete, http.MethodDelete, "/api/courses/{id}", target, "", caller)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Unable to find course"}`, rec.Body.String())

	assert.False(t, called)
}

func TestGreetingAndRouteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	Greeting(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `"Welcome to the REST API project!"`, rec.Body.String())

	rec = httptest.NewRecorder()
	RouteNotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}
