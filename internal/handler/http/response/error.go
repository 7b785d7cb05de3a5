package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, remittance.ErrRemittanceNotFound):
		NotFound(w, "Remittance not found")
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
