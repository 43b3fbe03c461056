package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slot", validateSlot)
	_ = v.RegisterValidation("itemname", validateItemName)
	_ = v.RegisterValidation("charname", validateCharacterName)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lower-cased field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "slot":
			errs[field] = ErrMsgInvalidSlotError
		case "itemname":
			errs[field] = fmt.Sprintf("Must be 1 to %d characters", domain.MaxItemNameLength)
		case "charname":
			errs[field] = fmt.Sprintf("Must be 1 to %d characters", domain.MaxCharacterNameLength)
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt", "lte":
			errs[field] = ErrMsgInvalidAmountError
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateSlot(fl validator.FieldLevel) bool {
	return domain.ValidSlot(int(fl.Field().Int()))
}

func validateItemName(fl validator.FieldLevel) bool {
	return validName(fl.Field().String(), domain.MaxItemNameLength)
}

func validateCharacterName(fl validator.FieldLevel) bool {
	return validName(fl.Field().String(), domain.MaxCharacterNameLength)
}

func validName(s string, maxLen int) bool {
	clean := naming.Clean(s)
	return clean != "" && utf8.RuneCountInString(clean) <= maxLen
}
