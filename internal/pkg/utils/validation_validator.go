package utils

import (
	"sepsis-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("scoring_system", validateScoringSystem)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateScoringSystem(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.ScoringSystemSOFA ||
		value == constvars.ScoringSystemQSOFA ||
		value == constvars.ScoringSystemNEWS2
}
