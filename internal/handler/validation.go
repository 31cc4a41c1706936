package handler

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// oneOf accepts a field whose value is one of the space separated values of the tag parameter.
func oneOf(fl validator.FieldLevel) bool {
	return slices.Contains(strings.Fields(fl.Param()), fl.Field().String())
}

// RegisterValidation Inspiration: https://blog.logrocket.com/gin-binding-in-go-a-tutorial-with-examples/
func RegisterValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("oneOf", oneOf)
	}
	return errors.New("error getting validation engine")
}
