// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"smartgrow/internal/refcode"
)

// phoneRegex accepts local (03xxxxxxxxx) and international (+92xxxxxxxxxx) formats.
var phoneRegex = regexp.MustCompile(`^(\+92[0-9]{10}|0[0-9]{10})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("referral_code", validateReferralCode)
		_ = v.RegisterValidation("pk_phone", validatePhone)
	}
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bank_transfer", "easypaisa", "usdt_trc20":
		return true
	}
	return false
}

func validateReferralCode(fl validator.FieldLevel) bool {
	return refcode.IsValid(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}
