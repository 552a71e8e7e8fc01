package utils

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator with the catalogue rules registered
// as custom tags:
//
//	nospace     string must not contain whitespace
//	notfuture   date (time.Time or YYYY-MM-DD string) must not be after today
//	releasedate date must not be before Rules.EarliestRelease
//	description string must not exceed Rules.MaxDescription runes
type Validator struct {
	validate *validator.Validate
	rules    RulesConfig
	now      func() time.Time
}

func NewValidator(rules RulesConfig) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		rules:    rules,
		now:      time.Now,
	}

	v.validate.RegisterValidation("nospace", v.noSpace)
	v.validate.RegisterValidation("notfuture", v.notFuture)
	v.validate.RegisterValidation("releasedate", v.releaseDate)
	v.validate.RegisterValidation("description", v.description)

	return v
}

// Rules returns the thresholds the validator was built with.
func (v *Validator) Rules() RulesConfig {
	return v.rules
}

// ValidateStruct returns field -> message for every failed rule, or nil.
func (v *Validator) ValidateStruct(data any) map[string]string {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			errs[fe.Field()] = v.message(fe)
		}
		return errs
	}

	errs["_"] = err.Error()
	return errs
}

// Check runs ValidateStruct and folds failures into an ErrBadRequest.
func (v *Validator) Check(data any) error {
	if errs := v.ValidateStruct(data); len(errs) > 0 {
		return BadRequest("validation failed: %s", FormatValidationErrors(errs))
	}
	return nil
}

func (v *Validator) message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "datetime":
		return fmt.Sprintf("Must be a date in format %s", err.Param())
	case "nospace":
		return "Must not contain spaces"
	case "notfuture":
		return "Must not be in the future"
	case "releasedate":
		return fmt.Sprintf("Must not be before %s", v.rules.EarliestRelease.Format(DateLayout))
	case "description":
		return fmt.Sprintf("Maximum length is %d", v.rules.MaxDescription)
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

func (v *Validator) noSpace(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), " \t\n\r")
}

func (v *Validator) notFuture(fl validator.FieldLevel) bool {
	date, ok := fieldDate(fl)
	if !ok {
		return true
	}
	return !calendarDay(date).After(calendarDay(v.now()))
}

// calendarDay drops the clock and zone, keeping the date as seen in t's location.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (v *Validator) releaseDate(fl validator.FieldLevel) bool {
	date, ok := fieldDate(fl)
	if !ok {
		return true
	}
	return !date.Before(v.rules.EarliestRelease)
}

func (v *Validator) description(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) <= v.rules.MaxDescription
}

// fieldDate reads a time.Time or YYYY-MM-DD string field. Unparsable strings
// report ok=false and are left to the datetime tag.
func fieldDate(fl validator.FieldLevel) (time.Time, bool) {
	switch value := fl.Field().Interface().(type) {
	case time.Time:
		return value, !value.IsZero()
	case string:
		t, err := time.Parse(DateLayout, value)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
