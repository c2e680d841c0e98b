// Package validators wraps the shared request validator instance.
package validators

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// New returns the shared validator. Validator instances cache struct
// metadata, so one instance serves all handlers.
func New() *validator.Validate { return v }
