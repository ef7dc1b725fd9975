// Package validation composes per-field checks into a single error value.
//
// Each Rule inspects one value and returns a human-readable message, or "" when
// the value is acceptable. Errors keeps the first failing message per field so a
// form can highlight every bad field at once.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrInvalid is matched by errors.Is for every Errors value.
var ErrInvalid = errors.New("validation failed")

// Errors maps a field name to its first validation message.
type Errors map[string]string

// New returns an empty Errors.
func New() Errors {
	return Errors{}
}

// Add records message for field unless the field already failed.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Err returns nil when nothing failed, e otherwise.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalid) true for any Errors.
func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Rule validates a string value for field.
type Rule func(field, value string) string

// Check runs rules in order and records the first failure.
func (e Errors) Check(field, value string, rules ...Rule) {
	for _, rule := range rules {
		if msg := rule(field, value); msg != "" {
			e.Add(field, msg)
			return
		}
	}
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// Required fails on empty or whitespace-only values.
func Required() Rule {
	return func(field, value string) string {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", label(field))
		}
		return ""
	}
}

// MaxLen limits the number of characters (not bytes).
func MaxLen(n int) Rule {
	return func(field, value string) string {
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf("The %s field must not be greater than %d characters.", label(field), n)
		}
		return ""
	}
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// Email accepts addresses like owner@shop.io.
func Email() Rule {
	return func(field, value string) string {
		if !emailRegex.MatchString(strings.ToLower(value)) {
			return fmt.Sprintf("The %s field must be a valid email address.", label(field))
		}
		return ""
	}
}

// URL accepts absolute http(s) URLs with a host.
func URL() Rule {
	return func(field, value string) string {
		u, err := url.ParseRequestURI(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("The %s field must be a valid URL.", label(field))
		}
		return ""
	}
}

// Matches requires the whole value to match re.
func Matches(re *regexp.Regexp) Rule {
	return func(field, value string) string {
		if !re.MatchString(value) {
			return fmt.Sprintf("The %s field format is invalid.", label(field))
		}
		return ""
	}
}

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// Numeric accepts digit-only strings such as barcodes.
func Numeric() Rule {
	return func(field, value string) string {
		if !digitsRegex.MatchString(value) {
			return fmt.Sprintf("The %s field must be a number.", label(field))
		}
		return ""
	}
}

// Optional skips rules when the value is empty.
func Optional(rules ...Rule) Rule {
	return func(field, value string) string {
		if strings.TrimSpace(value) == "" {
			return ""
		}
		for _, rule := range rules {
			if msg := rule(field, value); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// CheckID requires a positive id and reports whether it passed.
func (e Errors) CheckID(field string, id *int64) bool {
	if id == nil {
		e.Add(field, fmt.Sprintf("The %s field is required.", label(field)))
		return false
	}
	if *id <= 0 {
		e.Add(field, fmt.Sprintf("The selected %s is invalid.", label(field)))
		return false
	}
	return true
}

// DecimalRule validates an amount for field.
type DecimalRule func(field string, v decimal.Decimal) string

// CheckDecimal requires v and runs rules in order. It reports whether v passed.
func (e Errors) CheckDecimal(field string, v *decimal.Decimal, rules ...DecimalRule) bool {
	if v == nil {
		e.Add(field, fmt.Sprintf("The %s field is required.", label(field)))
		return false
	}
	for _, rule := range rules {
		if msg := rule(field, *v); msg != "" {
			e.Add(field, msg)
			return false
		}
	}
	return true
}

// Between bounds an amount inclusively.
func Between(min, max decimal.Decimal) DecimalRule {
	return func(field string, v decimal.Decimal) string {
		if v.LessThan(min) || v.GreaterThan(max) {
			return fmt.Sprintf("The %s field must be between %s and %s.", label(field), min.StringFixed(2), max.StringFixed(2))
		}
		return ""
	}
}

// AtLeast requires v >= other, naming otherField in the message.
func AtLeast(other decimal.Decimal, otherField string) DecimalRule {
	return func(field string, v decimal.Decimal) string {
		if v.LessThan(other) {
			return fmt.Sprintf("The %s field must be greater than or equal to %s.", label(field), label(otherField))
		}
		return ""
	}
}

// Scalar is a raw request value. It binds from a form field as is and from
// JSON as either a string or a number, so "123" and 123 both arrive as "123".
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", data)
	}
	*s = Scalar(n)
	return nil
}

// String returns the value without surrounding whitespace.
func (s Scalar) String() string {
	return strings.TrimSpace(string(s))
}

// ParseInt64 returns nil for a blank value and records a field error when the
// value is not an integer. Presence is left to CheckID.
func (e Errors) ParseInt64(field string, s Scalar) *int64 {
	raw := s.String()
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		e.Add(field, fmt.Sprintf("The %s field must be an integer.", label(field)))
		return nil
	}
	return &n
}

// ParseDecimal returns nil for a blank value and records a field error when the
// value is not a number. Presence is left to CheckDecimal.
func (e Errors) ParseDecimal(field string, s Scalar) *decimal.Decimal {
	raw := s.String()
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		e.Add(field, fmt.Sprintf("The %s field must be a number.", label(field)))
		return nil
	}
	return &d
}
