package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/retaildocs/backend/internal/domain/document"
)

// SetupValidator registers custom validations on gin's binding validator.
// Safe to call more than once.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("doctype", validateDocumentType)
}

// validateDocumentType accepts only known document type names
func validateDocumentType(fl validator.FieldLevel) bool {
	return document.Type(fl.Field().String()).IsValid()
}
