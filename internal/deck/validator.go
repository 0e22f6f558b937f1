package deck

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/lazycat-apps/milka/internal/theme"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("stylename", isValidStyleName); err != nil {
		return nil, nil, fmt.Errorf("failed to register stylename validation: %w", err)
	}
	if err := validate.RegisterTranslation("stylename", trans, func(ut ut.Translator) error {
		return ut.Add("stylename", "{0} must be one of the known style names", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("stylename", fe.Field())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register stylename translation: %w", err)
	}

	return validate, trans, nil
}

func isValidStyleName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	return theme.IsValidStyle(name)
}

// toValidationError converts the first field error into a typed
// ValidationError with a human-readable message.
func (s *Service) toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := fieldErrors[0]
	return &ValidationError{
		Field:   fe.Field(),
		Message: fe.Translate(s.trans),
	}
}
