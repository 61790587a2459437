package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"hotel-guest-service/models"
	"hotel-guest-service/services"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// validateGuestRequest checks the shape of a create/update payload: names,
// email and phone must be non-blank and email must be well formed.
func validateGuestRequest(req models.GuestRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return services.NewValidationError(fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

// parseGuestID reads the :id path parameter; only positive integers are ids.
func parseGuestID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(ctx.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, services.NewValidationError(models.FieldError{Field: "id", Message: "must be a positive integer"})
	}
	return uint(id), nil
}

// parsePageRequest reads page and size, falling back to the defaults when a
// parameter is absent. Range checks are left to the service.
func parsePageRequest(ctx *gin.Context) (models.PageRequest, error) {
	var fields []models.FieldError

	page, ok := queryInt(ctx, "page", models.DefaultPage)
	if !ok {
		fields = append(fields, models.FieldError{Field: "page", Message: "must be an integer"})
	}
	size, ok := queryInt(ctx, "size", models.DefaultPageSize)
	if !ok {
		fields = append(fields, models.FieldError{Field: "size", Message: "must be an integer"})
	}

	if len(fields) > 0 {
		return models.PageRequest{}, services.NewValidationError(fields...)
	}
	return models.NewPageRequest(page, size), nil
}

// requiredQuery returns a query parameter that must be present. An empty
// value is accepted.
func requiredQuery(ctx *gin.Context, name string) (string, error) {
	value, ok := ctx.GetQuery(name)
	if !ok {
		return "", services.NewValidationError(models.FieldError{Field: name, Message: "is required"})
	}
	return value, nil
}

func requiredQueryInt(ctx *gin.Context, name string) (int, error) {
	raw, err := requiredQuery(ctx, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, services.NewValidationError(models.FieldError{Field: name, Message: "must be an integer"})
	}
	return n, nil
}

func queryInt(ctx *gin.Context, name string, def int) (int, bool) {
	raw, ok := ctx.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}
