package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator.
//
// There is deliberately no cross-field check that totalAmount matches the
// item sum: the invoice renderer recomputes the subtotal itself and prints
// the recorded total alongside it, divergence included.
func New() *validatorv10.Validate {
	return validatorv10.New()
}
