package store

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// whitespace-only text counts as empty
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// report json names so messages line up with the request payload
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps "field" or "field.tag" to the message shown to clients.
var fieldMessages = map[string]string{
	"firstName":       "Please provide a first name.",
	"lastName":        "Please provide a last name.",
	"emailAddress":    "Please provide a valid email address.",
	"password":        "Please provide a password.",
	"password.max":    "Please provide a password of at most 72 bytes.",
	"title":           "Please provide a title.",
	"description":     "Please provide a description.",
	"userId":          "Please provide a user id.",
	"userId.notfound": "Please provide a valid user.",
}

const emailExistsMessage = "The email already exists. Please provide a new email."

// Validate checks v and turns every failed field into its client message.
// It returns nil when v is valid.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, messageFor(fe.Field(), fe.Tag()))
	}
	return validationError(messages...)
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	return field + " is invalid"
}
