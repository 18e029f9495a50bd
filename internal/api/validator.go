package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/honlnm/biztime/internal/entity"
)

type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	// Amounts reach validation functions as their decimal text.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}

		return d.String()
	}, decimal.Decimal{})

	err := v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}

		return entity.ValidateAmount(d) == nil
	})
	if err != nil {
		panic(err)
	}

	err = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
	})
	if err != nil {
		panic(err)
	}

	return &Validator{validator: v}
}

// Validate checks struct tags of i and reports every failing field.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldsErr validator.ValidationErrors
	if !errors.As(err, &fieldsErr) {
		return fmt.Errorf("%w: %w", entity.ErrInvalidArgument, err)
	}

	fields := make([]string, 0, len(fieldsErr))
	for _, fe := range fieldsErr {
		fields = append(fields, fieldMessage(fe))
	}

	return fmt.Errorf("%w: %s", entity.ErrInvalidArgument, strings.Join(fields, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "money":
		return fmt.Sprintf("%s must be a positive amount below %s with at most %d decimal places",
			fe.Field(), entity.MaxAmount, entity.AmountScale)
	case "nospace":
		return fe.Field() + " must not contain spaces"
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}
