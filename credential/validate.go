package credential

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validatorOnce builds a single shared *validator.Validate tagged to
// report struct fields by their JSON member name, matching
// dc4eu-vc/pkg/helpers/validate.go's RegisterTagNameFunc convention so
// error messages name "issuanceDate", not "IssuanceDate".
var (
	sharedValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		sharedValidator = v
	})
	return sharedValidator
}

// ValidateStruct runs go-playground/validator/v10's struct-tag checks
// over a Credential or Presentation, ahead of the semantic §3 checks
// Validate() performs. Intended as the last check before signing.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	switch s.(type) {
	case *Presentation, Presentation:
		return ErrMalformedPresentation("struct validation failed", err)
	default:
		return ErrMalformedCredential("struct validation failed", err)
	}
}
