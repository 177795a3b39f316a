package venues

import "github.com/go-playground/validator/v10"

// RegisterValidations adds the "venuecategory" tag to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("venuecategory", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
}
