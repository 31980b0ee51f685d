package validator

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/osm2svg/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("drawingname", validateDrawingName)
}

// Validate - валидация структуры. Ошибки валидации превращаются в
// ErrInvalidRequest с перечнем полей в деталях.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.ErrInvalidRequest.Wrap(err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(details).Wrap(err)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// validateDrawingName - имя чертежа используется как имя файла и id в SVG,
// поэтому разделители путей и пробелы запрещены
func validateDrawingName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\ "'<>&`)
}
