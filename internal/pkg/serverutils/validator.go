package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a bound request struct against its validate tags and
// flattens the violations into a single readable error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}
