package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsKeepsFirstMessagePerField(t *testing.T) {
	errs := New()
	errs.Add("name", "first")
	errs.Add("name", "second")

	assert.Equal(t, "first", errs["name"])
	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("email"))
}

func TestErrorsErr(t *testing.T) {
	assert.NoError(t, New().Err())

	errs := New()
	errs.Add("name", "bad")
	err := errs.Err()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvalid))

	var target Errors
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "bad", target["name"])
}

func TestErrorStringIsSorted(t *testing.T) {
	errs := Errors{"website": "w", "email": "e"}
	assert.Equal(t, "validation failed: email: e; website: w", errs.Error())
}

func TestCheckStopsAtFirstFailure(t *testing.T) {
	errs := New()
	errs.Check("name", "", Required(), MaxLen(3))
	assert.Equal(t, "The name field is required.", errs["name"])

	errs = New()
	errs.Check("shelf_number", "ABCDEFGHI", Required(), MaxLen(8))
	assert.Equal(t, "The shelf number field must not be greater than 8 characters.", errs["shelf_number"])
}

func TestStringRules(t *testing.T) {
	phone := regexp.MustCompile(`^[0-9+\-\s]+$`)

	tests := []struct {
		name  string
		rule  Rule
		value string
		ok    bool
	}{
		{"required blank", Required(), "   ", false},
		{"required ok", Required(), "x", true},
		{"maxlen counts runes", MaxLen(3), "äöü", true},
		{"maxlen over", MaxLen(3), "abcd", false},
		{"email ok", Email(), "Owner@Shop.io", true},
		{"email missing at", Email(), "owner.shop.io", false},
		{"url ok", URL(), "https://acme.io", true},
		{"url no scheme", URL(), "acme.io", false},
		{"url ftp", URL(), "ftp://acme.io", false},
		{"phone ok", Matches(phone), "+92 300-1234567", true},
		{"phone letters", Matches(phone), "call me", false},
		{"numeric ok", Numeric(), "0123456789", true},
		{"numeric decimal", Numeric(), "12.5", false},
		{"optional empty", Optional(Email()), "", true},
		{"optional bad", Optional(Email()), "nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.rule("field", tt.value)
			assert.Equal(t, tt.ok, msg == "", msg)
		})
	}
}

func TestCheckID(t *testing.T) {
	errs := New()
	assert.False(t, errs.CheckID("category_id", nil))
	assert.Equal(t, "The category id field is required.", errs["category_id"])

	zero := int64(0)
	errs = New()
	assert.False(t, errs.CheckID("company_id", &zero))
	assert.True(t, strings.Contains(errs["company_id"], "invalid"))

	one := int64(1)
	assert.True(t, New().CheckID("company_id", &one))
}

func TestDecimalRules(t *testing.T) {
	min := decimal.Zero
	max := decimal.RequireFromString("999999.99")

	errs := New()
	assert.False(t, errs.CheckDecimal("purchase_price", nil, Between(min, max)))
	assert.Contains(t, errs["purchase_price"], "required")

	over := decimal.RequireFromString("1000000")
	errs = New()
	assert.False(t, errs.CheckDecimal("purchase_price", &over, Between(min, max)))
	assert.Equal(t, "The purchase price field must be between 0.00 and 999999.99.", errs["purchase_price"])

	retail := decimal.RequireFromString("9.00")
	errs = New()
	assert.False(t, errs.CheckDecimal("retail_price", &retail, Between(min, max), AtLeast(decimal.RequireFromString("10.00"), "purchase_price")))
	assert.Equal(t, "The retail price field must be greater than or equal to purchase price.", errs["retail_price"])

	ok := decimal.RequireFromString("10.00")
	assert.True(t, New().CheckDecimal("retail_price", &ok, Between(min, max), AtLeast(ok, "purchase_price")))
}

func TestScalarAcceptsStringsAndNumbers(t *testing.T) {
	var body struct {
		Barcode Scalar `json:"barcode"`
		Price   Scalar `json:"price"`
		Missing Scalar `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"barcode":12345678901234567890,"price":" 10.50 ","missing":null}`), &body))
	assert.Equal(t, "12345678901234567890", body.Barcode.String())
	assert.Equal(t, "10.50", body.Price.String())
	assert.Equal(t, "", body.Missing.String())

	assert.Error(t, json.Unmarshal([]byte(`{"barcode":{"a":1}}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"barcode":true}`), &body))
}

func TestParseScalars(t *testing.T) {
	errs := New()
	assert.Nil(t, errs.ParseInt64("category_id", ""))
	assert.Nil(t, errs.ParseDecimal("retail_price", " "))
	assert.Empty(t, errs)

	assert.Nil(t, errs.ParseInt64("category_id", "abc"))
	assert.Equal(t, "The category id field must be an integer.", errs["category_id"])
	assert.False(t, errs.CheckID("category_id", nil))
	assert.Equal(t, "The category id field must be an integer.", errs["category_id"])

	assert.Nil(t, errs.ParseDecimal("retail_price", "12,5"))
	assert.Equal(t, "The retail price field must be a number.", errs["retail_price"])

	id := New().ParseInt64("company_id", " 42 ")
	require.NotNil(t, id)
	assert.Equal(t, int64(42), *id)

	price := New().ParseDecimal("purchase_price", "10.005")
	require.NotNil(t, price)
	assert.True(t, price.Equal(decimal.RequireFromString("10.005")))
}
