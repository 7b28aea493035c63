package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be at least {param}",
	"max":      "{field} must be at most {param}",
	"email":    "{field} must be a valid email address",
	"oneof":    "{field} must be one of {param}",
	"len":      "{field} must be {param} characters long",
	"day":      "{field} must be a date in YYYY-MM-DD format",
}

// messagesOf renders one line per field error, in struct order.
func messagesOf(err error) []string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		tmpl, ok := messages[valErr.Tag()]
		if !ok {
			out = append(out, valErr.Error())

			continue
		}

		out = append(out, strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param()).Replace(tmpl))
	}

	return out
}
