package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationMap flattens validator.ValidationErrors into the field→messages
// shape JsonValidationError expects.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["body"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := "failed on rule: " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[field] = append(out[field], msg)
	}
	return out
}
