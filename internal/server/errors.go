package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/talent-match/internal/matching"
)

// HTTPStatus maps service errors onto HTTP status codes. Anything not
// recognized is a 500.
func HTTPStatus(err error) int {
	var notFound *matching.NotFoundError
	var invalidStatus *matching.InvalidStatusError
	var validation validator.ValidationErrors

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidStatus):
		return http.StatusBadRequest
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
