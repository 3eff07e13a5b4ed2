package models

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Form holds the raw text of the record entry fields, as typed by the user.
type Form struct {
	ID      string `form:"id" validate:"int32"`
	Name    string `form:"name" validate:"nonblank"`
	Type    string `form:"type"`
	Height  string `form:"height" validate:"float"`
	Weight  string `form:"weight" validate:"float"`
	Ability string `form:"ability"`
}

// IsEmpty reports whether every field is blank.
func (f Form) IsEmpty() bool {
	return f.trimmed() == Form{}
}

// ValidationError lists the entry fields whose text was rejected, in form order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid " + strings.Join(e.Fields, ", ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Pokemon validates every field and returns the parsed record with Active set.
func (f Form) Pokemon() (Pokemon, error) {
	t := f.trimmed()
	if err := validationError(V().Struct(t)); err != nil {
		return Pokemon{}, err
	}

	// Validators above guarantee these parse.
	id, _ := strconv.ParseInt(t.ID, 10, 32)
	height, _ := strconv.ParseFloat(t.Height, 64)
	weight, _ := strconv.ParseFloat(t.Weight, 64)

	return Pokemon{
		ID:      int(id),
		Name:    t.Name,
		Type:    t.Type,
		Height:  height,
		Weight:  weight,
		Ability: t.Ability,
		Active:  true,
	}, nil
}

// ParseID validates and parses only the identifier field.
func (f Form) ParseID() (int, error) {
	t := f.trimmed()
	if err := validationError(V().StructPartial(t, "ID")); err != nil {
		return 0, err
	}
	id, _ := strconv.ParseInt(t.ID, 10, 32)
	return int(id), nil
}

func (f Form) trimmed() Form {
	return Form{
		ID:      strings.TrimSpace(f.ID),
		Name:    strings.TrimSpace(f.Name),
		Type:    strings.TrimSpace(f.Type),
		Height:  strings.TrimSpace(f.Height),
		Weight:  strings.TrimSpace(f.Weight),
		Ability: strings.TrimSpace(f.Ability),
	}
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, e := range ve {
		fields = append(fields, e.Field())
	}
	return &ValidationError{Fields: fields}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// V returns the shared validator with the form validators registered.
func V() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("form"); name != "" {
				return name
			}
			return fld.Name
		})
		_ = validate.RegisterValidation("int32", int32Validator)
		_ = validate.RegisterValidation("float", floatValidator)
		_ = validate.RegisterValidation("nonblank", nonBlankValidator)
	})
	return validate
}

// int32Validator accepts base-10 integers that fit the Id column.
func int32Validator(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 32)
	return err == nil
}

// floatValidator accepts finite decimal numbers.
func floatValidator(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	return err == nil && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonBlankValidator(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
