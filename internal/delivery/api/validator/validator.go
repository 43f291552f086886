// Package validator adapts go-playground/validator to echo and turns rule
// failures into ordered, human-readable field violations.
package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/errors"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern = regexp.MustCompile(`^[A-Za-z -]+$`)
	passwordPattern   = regexp.MustCompile(`^[A-Za-z0-9]{9,}$`)
	hasLetter         = regexp.MustCompile(`[A-Za-z]`)
	hasDigit          = regexp.MustCompile(`[0-9]`)
)

// Normalizer is implemented by request payloads that trim or canonicalize
// their fields before validation.
type Normalizer interface {
	Normalize()
}

// Messenger is implemented by request payloads that carry their own messages,
// keyed by "field.tag".
type Messenger interface {
	Messages() map[string]string
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds the validator with the custom tags used by the auth payloads.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}

		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()

		return passwordPattern.MatchString(s) && hasLetter.MatchString(s) && hasDigit.MatchString(s)
	})

	return &CustomValidator{validate: v}
}

// Validate normalizes the payload, runs its rules and returns a
// *domainerrors.ValidationError listing violations in field order.
func (cv *CustomValidator) Validate(i any) error {
	if n, ok := i.(Normalizer); ok {
		n.Normalize()
	}

	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "failed to validate payload")
	}

	var messages map[string]string
	if m, ok := i.(Messenger); ok {
		messages = m.Messages()
	}

	violations := make([]domainerrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, toViolation(fe, messages))
	}

	return domainerrors.NewValidationError(violations...)
}

func toViolation(fe validator.FieldError, messages map[string]string) domainerrors.FieldViolation {
	field, key := splitField(fe.Field())

	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		if strings.Contains(msg, "%") {
			msg = fmt.Sprintf(msg, describe(key, fe))
		}

		return domainerrors.FieldViolation{Field: field, Message: msg}
	}

	return domainerrors.FieldViolation{Field: field, Message: defaultMessage(field, fe)}
}

// splitField turns "socialLinks[github]" into ("socialLinks", "github").
func splitField(name string) (string, string) {
	open := strings.IndexByte(name, '[')
	if open < 0 || !strings.HasSuffix(name, "]") {
		return name, ""
	}

	return name[:open], name[open+1 : len(name)-1]
}

func describe(key string, fe validator.FieldError) any {
	if fe.Tag() == "oneof" || key == "" {
		return fe.Value()
	}

	return key
}

func defaultMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "min", "max":
		return fmt.Sprintf("%s is out of range", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "email":
		return "Invalid email address"
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	}

	return field + " is invalid"
}
