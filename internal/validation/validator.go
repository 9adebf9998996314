package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"design-dojo/internal/domain"
	"design-dojo/internal/util"

	"github.com/go-playground/validator/v10"
)

var topicPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,50}$`)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return util.IsValidULID(fl.Field().String())
	})
	_ = v.RegisterValidation("topic", func(fl validator.FieldLevel) bool {
		return topicPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidateStruct runs the struct's validate tags and translates failures.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Field:   "body",
			Code:    domain.CodeInvalidInput,
			Message: err.Error(),
		}}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return domain.NewMissingFieldError(field)
	case "min", "max":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: field + " length must satisfy " + fe.Tag() + "=" + fe.Param(),
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// ValidateTopic validates a topic path parameter.
func (v *Validator) ValidateTopic(topic string) domain.ValidationErrors {
	if strings.TrimSpace(topic) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}
	if !topicPattern.MatchString(topic) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("topic", topic)}
	}
	return nil
}

// ValidateUserID validates a user id taken from a header or path.
func (v *Validator) ValidateUserID(userID string) domain.ValidationErrors {
	if strings.TrimSpace(userID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("user_id")}
	}
	if !util.IsValidULID(userID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("user_id", userID)}
	}
	return nil
}
