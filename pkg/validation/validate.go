package validation

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Custom tags for complaint domain enums
	_ = v.RegisterValidation("complaint_status", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "draft", "pending", "in_progress", "resolved", "closed", "escalated":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("complaint_priority", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "low", "medium", "high", "urgent":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "en", "am":
			return true
		}
		return false
	})

	return v
}

// ValidateStruct validates a struct and returns a *ValidationError on failure
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}
