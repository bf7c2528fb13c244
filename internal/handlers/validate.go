package handlers

import (
	"mime"
	"net/http"
	"reflect"
	"strings"

	"taskmanager/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report failures under the json field name, not the Go one.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("taskstate", func(fl validator.FieldLevel) bool {
		return models.TaskState(fl.Field().String()).Valid()
	})

	return v
}

// validateRequest returns a field -> message map, or nil when the
// request is well formed.
func validateRequest(req any) map[string]string {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": "is invalid"}
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = messageForTag(fieldErr.Tag())
	}
	return fields
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "taskstate":
		return "must be one of TODO, IN_PROGRESS, COMPLETED, DELAYED"
	default:
		return "is invalid"
	}
}

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == target
}
