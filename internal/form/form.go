// Package form holds the request payloads the HTTP layer binds and the
// rules that validate them.
//
// BINDING:
// Each form can be filled from an HTML form post (Bind with url.Values) or
// decoded from JSON. The `form` and `json` tags use the same snake_case
// names, so a client may send either encoding.
//
// VALIDATION:
// Field rules are declared with go-playground/validator struct tags. Validate
// returns the first failure as an *apperror.AppError naming the field, so
// handlers can answer 400 with {"field": "odds", ...}.
package form

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/bookie/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name ("password1") instead of the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("american_odds", americanOdds); err != nil {
		panic(fmt.Sprintf("form: registering american_odds: %v", err))
	}
	return v
}

// americanOdds accepts -100 and below or +100 and above. Anything strictly
// between has no meaning in the American convention.
func americanOdds(fl validator.FieldLevel) bool {
	odds := fl.Field().Int()
	return odds <= -100 || odds >= 100
}

// check runs the struct rules on f and converts the first failure.
func check(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("form: validating: %w", err)
	}
	fe := verrs[0]
	return apperror.ValidationFailed(fe.Field(), message(fe))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, strings.ToLower(fe.Param()))
	case "american_odds":
		return field + " must be -100 or lower, or 100 or higher"
	}
	return field + " is invalid"
}

// Ints arrive as text in an HTML form post.

func parseInt(v url.Values, field string) (int, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(field, field+" must be a whole number")
	}
	return n, nil
}

func parseInt64(v url.Values, field string) (int64, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed(field, field+" must be a whole number")
	}
	return n, nil
}
