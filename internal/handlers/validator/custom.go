package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saino365/internhub/internal/store/model"
)

var (
	// printable characters, no control sequences; the length cap is a tag.
	titleValidRegex         = regexp.MustCompile(`^[^\x00-\x1f]+$`)
	registrationNumberRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)
)

func titleValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return titleValidRegex.MatchString(val)
}

func registrationNumberValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return registrationNumberRegex.MatchString(val)
}

func uuidValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(uuid.UUID)
	if !ok {
		return false
	}
	return val != uuid.UUID{}
}

func actorRoleValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	switch val {
	case model.RoleStudent:
		fallthrough
	case model.RoleCompany:
		fallthrough
	case model.RoleAdmin:
		return true
	default:
		return false
	}
}
