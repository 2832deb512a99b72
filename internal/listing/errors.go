package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a field identifier is not recognised.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned when a value does not match the field's type.
	ErrFieldType = errors.New("value has wrong type for field")
	// ErrReadOnlyField is returned for fields derived from attachments.
	ErrReadOnlyField = errors.New("field is derived from attachments")
)

// Error codes carried by FieldError.
const (
	CodeRequired    = "required"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeInvalid     = "invalid"
	CodeTooMany     = "too_many"
	CodeNegative    = "negative"
	CodeMin         = "min"
	CodeMax         = "max"
	CodeStep        = "step"
	CodeUnconfirmed = "unconfirmed"
)

// FieldError is a single field-scoped validation failure. It is data, not
// a Go error: validation never fails, it reports.
type FieldError struct {
	Field   Field  `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
