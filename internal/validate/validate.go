// Package validate checks struct tags on command parameters.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bukukas/bukukas/internal/apperrors"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its `validate` tags. The first failing field is
// reported as an apperrors.ValidationError with reason ErrInvalidField.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return apperrors.Invalid(apperrors.ErrInvalidField, "%s must satisfy %s", strings.ToLower(fe.Field()), rule)
}
