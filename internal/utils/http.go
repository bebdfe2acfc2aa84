package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaughan-dsouza/courses-api/internal/logger"
)

// HTTPError carries the status the terminal error handler should answer with.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, msg string) *HTTPError {
	return &HTTPError{Status: status, Message: msg}
}

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// JSONMessage writes {"message": "..."} with a given status.
func JSONMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// WriteError is the terminal error handler: it logs err and answers with
// the status of an *HTTPError in the chain, or 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Status != 0 {
		status = httpErr.Status
	}

	logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("global error handler")

	JSONError(w, status, err.Error())
}

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 100 << 10

// DecodeJSON parses the JSON body into v. An empty body leaves v untouched.
// Bodies over MaxBodyBytes come back as a 413 *HTTPError; malformed input or
// anything after the first JSON value comes back as a 400 *HTTPError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON value")
		}
		return decodeError(err)
	}

	return nil
}

func decodeError(err error) *HTTPError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &HTTPError{Status: http.StatusRequestEntityTooLarge, Message: "request body too large", Err: err}
	}
	return &HTTPError{Status: http.StatusBadRequest, Message: "invalid JSON: " + err.Error(), Err: err}
}
