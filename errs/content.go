package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// The two failure kinds of a content write. Both reach the caller unchanged.
var (
	ErrValidation           = errors.New("validation failed")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// NewValidationError reports a field that violates its length or required
// constraint. field is the JSON name of the offending field.
func NewValidationError(field, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    fmt.Sprintf("%s %s", field, message),
		Field:      field,
	}
}

// NewReferentialIntegrityError reports a required reference that points to a
// record which does not exist.
func NewReferentialIntegrityError(field string, id fmt.Stringer) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrReferentialIntegrity,
		Details:    fmt.Sprintf("%s %s does not exist", field, id),
		Field:      field,
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsReferentialIntegrityError(err error) bool {
	return errors.Is(err, ErrReferentialIntegrity)
}
