package middleware

import (
	"context"
	"net/http"

	"github.com/vaughan-dsouza/courses-api/internal/logger"
	"github.com/vaughan-dsouza/courses-api/internal/models"
	"github.com/vaughan-dsouza/courses-api/internal/store"
	"github.com/vaughan-dsouza/courses-api/internal/utils"
)

// UserFinder looks a user up by email address.
type UserFinder interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

const accessDenied = "Access Denied"

// BasicAuth authenticates the request from its basic-auth header and puts
// the matching user on the context. Every rejection gets the same 401 body;
// a failed lookup goes to the terminal error handler instead.
func BasicAuth(users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				deny(w, "auth header not found", "")
				return
			}

			user, err := users.UserByEmail(r.Context(), email)
			if err != nil {
				if store.KindOf(err) != store.KindNotFound {
					utils.WriteError(w, r, err)
					return
				}
				deny(w, "credentials invalid", email)
				return
			}

			if !store.CheckPassword(user.Password, password) {
				deny(w, "credentials invalid", user.EmailAddress)
				return
			}

			logger.Debug().Str("email", user.EmailAddress).Msg("authentication successful")

			next.ServeHTTP(w, r.WithContext(utils.WithCurrentUser(r.Context(), user)))
		})
	}
}

func deny(w http.ResponseWriter, reason, email string) {
	ev := logger.Warn()
	if email != "" {
		ev = ev.Str("email", email)
	}
	ev.Msg(reason)

	utils.JSONMessage(w, http.StatusUnauthorized, accessDenied)
}
