package services

import (
	"github.com/go-playground/validator/v10"

	"boutique/internal/models"
)

// NewValidator returns a validator with the catalog rules registered:
// "category" and "size" check membership in the fixed product enums.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", oneOfRule(models.ProductCategories))
	_ = v.RegisterValidation("size", oneOfRule(models.ProductSizes))
	return v
}

func oneOfRule(allowed []string) validator.Func {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	return func(fl validator.FieldLevel) bool {
		_, ok := set[fl.Field().String()]
		return ok
	}
}
