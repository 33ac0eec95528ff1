package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"pdf-explainer-be/internal/dto"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a client-facing ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return &dto.ValidationError{
			Message: fmt.Sprintf("field %s failed on rule %s", first.Field(), first.Tag()),
		}
	}
	return &dto.ValidationError{Message: err.Error()}
}
