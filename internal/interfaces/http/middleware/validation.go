package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/alexrentacar/backoffice/internal/domain/fleet"
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RequestIDKey is the header carrying the request ID
const RequestIDKey = "X-Request-ID"

// SetupValidator configures gin's validator: JSON field names in errors and
// the plate, role and date tags used by request DTOs.
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	RegisterValidators(v)
	return nil
}

// RegisterValidators adds the custom tags to v
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("plate", func(fl validator.FieldLevel) bool {
		return fleet.IsValidPlate(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return identity.Role(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := valueobject.ParseDate(fl.Field().String())
		return err == nil
	})
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: getValidationMessage(e),
			})
		}
		return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
	}

	return dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request: "+err.Error(), requestID)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, FormatValidationErrors(err, getRequestID(c)))
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "plate":
		return "Invalid plate: 3 to 20 letters, digits or dashes"
	case "role":
		return "Must be one of: admin user mechanic"
	case "date":
		return "Invalid date, expected YYYY-MM-DD"
	default:
		return "Invalid value"
	}
}
