package dto

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/jhoicas/autoventas-api/internal/domain"
)

// minPhoneDigits mínimo de dígitos de un teléfono aceptado.
const minPhoneDigits = 10

// isoLayouts formatos ISO-8601 aceptados para fechas de entrada.
var isoLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// toValidationError aplana validation.Errors (incluidos anidados) en *domain.ValidationError
// con params separados por punto. Cualquier otro error se devuelve tal cual.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}
	var fields []domain.FieldError
	collectFieldErrors("", errs, &fields)
	if len(fields) == 0 {
		return nil
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Param < fields[j].Param })
	return &domain.ValidationError{Fields: fields}
}

func collectFieldErrors(prefix string, errs validation.Errors, out *[]domain.FieldError) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		param := key
		if prefix != "" {
			param = prefix + "." + key
		}
		if nested, ok := err.(validation.Errors); ok {
			collectFieldErrors(param, nested, out)
			continue
		}
		*out = append(*out, domain.FieldError{Param: param, Msg: err.Error()})
	}
}

// stringValue extrae el texto de un string o *string; ok=false si no hay valor.
func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

// notBlank rechaza un campo presente pero vacío. nil (ausente) es válido.
func notBlank(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := stringValue(value)
		if ok && strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// phoneRule exige al menos 10 dígitos y un número posible en la región por defecto.
func phoneRule(region string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := stringValue(value)
		if !ok || s == "" {
			return nil
		}
		invalid := fmt.Errorf("%s is not a valid phone number!", s)
		digits := 0
		for _, r := range s {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits < minPhoneDigits {
			return invalid
		}
		num, err := phonenumbers.Parse(s, region)
		if err != nil || !phonenumbers.IsPossibleNumber(num) {
			return invalid
		}
		return nil
	}
}

// currencyRule exige un código ISO-4217 reconocido.
func currencyRule(value interface{}) error {
	s, ok := stringValue(value)
	if !ok || s == "" {
		return nil
	}
	if _, err := currency.ParseISO(s); err != nil {
		return errors.New("Currency must be a valid ISO-4217 code")
	}
	return nil
}

// nonNegative rechaza importes menores que cero.
func nonNegative(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		var d decimal.Decimal
		switch v := value.(type) {
		case decimal.Decimal:
			d = v
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			d = *v
		default:
			return nil
		}
		if d.IsNegative() {
			return errors.New(msg)
		}
		return nil
	}
}

// yearRule exige un año entre 1900 y el año en curso.
func yearRule(now time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		var year int
		switch v := value.(type) {
		case int:
			year = v
		case *int:
			if v == nil {
				return nil
			}
			year = *v
		default:
			return nil
		}
		if year < 1900 || year > now.Year() {
			return fmt.Errorf("Year must be between 1900 and %d", now.Year())
		}
		return nil
	}
}

// isoDate exige una fecha ISO-8601 parseable.
func isoDate(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := stringValue(value)
		if !ok {
			return nil
		}
		if _, err := ParseISODate(s); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}

// ParseISODate interpreta una fecha ISO-8601 (fecha completa o solo día, en UTC si no trae zona).
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha ISO-8601 inválida: %q", s)
}
