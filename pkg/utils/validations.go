package utils

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	Validator *validator.Validate
}

// NewCustomValidator registers the custom rules on the given engine, usually
// gin's binding validator so DTO tags can use them.
func NewCustomValidator(engine *validator.Validate) *CustomValidator {
	if engine == nil {
		engine = validator.New()
	}
	Validator := &CustomValidator{engine}
	Validator.ValidatorRegistery()
	return Validator
}

func (c *CustomValidator) ValidatorRegistery() {
	c.Validator.RegisterValidation("isemail", c.IsValidEmail)
	c.Validator.RegisterValidation("isphone", c.IsValidPhone)
}

func (c *CustomValidator) IsValidEmail(fl validator.FieldLevel) bool {

	email := strings.TrimSpace(fl.Field().String())
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsValidPhone accepts Spanish numbers: 9 digits, optionally preceded by the
// country code with or without a plus sign.
func (c *CustomValidator) IsValidPhone(fl validator.FieldLevel) bool {
	phoneNumber := strings.TrimSpace(fl.Field().String())
	phoneNumber = strings.TrimPrefix(phoneNumber, "+")
	phoneNumber = strings.TrimPrefix(phoneNumber, "34")
	if len(phoneNumber) != 9 {
		return false
	}
	for _, char := range phoneNumber {
		if !unicode.IsDigit(char) {
			return false
		}
	}
	return true
}
