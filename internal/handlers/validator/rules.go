package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// NewMarketplaceValidationRules covers every custom tag used by the
// marketplace wire types.
func NewMarketplaceValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("uuid_set", uuidValidator),
		},
		{
			Rule: registerFn("listing_title", titleValidator),
		},
		{
			Rule: registerFn("registration_number", registrationNumberValidator),
		},
		{
			Rule: registerFn("actor_role", actorRoleValidator),
		},
	}
}
