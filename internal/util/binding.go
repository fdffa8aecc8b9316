package util

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding validators used by the
// request structs. Must run before the router starts serving.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("fecha", validarFecha)
}

// validarFecha accepts dates in YYYY-MM-DD form.
func validarFecha(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	return ValidateFecha(s) == nil
}
