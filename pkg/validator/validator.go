package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs by their `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate returns the first violation as a readable error, nil if valid.
func (val *Validator) Validate(obj interface{}) error {
	err := val.v.Struct(obj)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("field %s failed validation on %s", fe.Field(), fe.Tag())
	}
	return err
}

// Var validates a single value against a rule string, e.g. "required,email".
func (val *Validator) Var(value interface{}, rules string) error {
	return val.v.Var(value, rules)
}
