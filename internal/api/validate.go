package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lealre/carsdb-backend/internal/models"
)

var ErrInvalidBody = errors.New("invalid JSON in request body")

// ValidationError carries per-field messages keyed by the json field name.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	v.RegisterValidation("series", func(fl validator.FieldLevel) bool {
		return models.IsValidSeries(fl.Field().String())
	})
	v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		return models.IsValidRating(fl.Field().Float())
	})
	return v
}

func decodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return ErrInvalidBody
	}

	if err := validate.Struct(dest); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			details := make(map[string]string, len(errs))
			for _, fieldErr := range errs {
				details[fieldErr.Field()] = validationMessage(fieldErr)
			}
			return &ValidationError{Details: details}
		}
		return err
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "series":
		return "must be one of the known series"
	case "rating":
		return "must be 0 or a multiple of 0.5 between 0.5 and 5"
	}
	return "is invalid"
}

var ErrInvalidPage = errors.New("page must be a positive integer")
