package usecase

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func isEmail(s string) bool {
	return validate.Var(strings.TrimSpace(s), "required,email") == nil
}

// 前後空白を落として空ならfalse
func present(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
