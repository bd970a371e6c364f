// Package validator wraps go-playground struct validation behind a small
// injectable type.
package validator

import "github.com/go-playground/validator/v10"

// Validator checks transport structs against their validate tags.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates s against its field tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}
