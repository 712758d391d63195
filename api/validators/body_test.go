package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakibulhaque/trendibay-backend/internal/cart"
	pkgerrors "github.com/rakibulhaque/trendibay-backend/pkg/errors"
)

func jsonRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyEnforcesQuantityFloor(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{name: "zero", body: `{"quantity":0}`, message: "is required"},
		{name: "negative", body: `{"quantity":-3}`, message: "must be 1 or more"},
		{name: "over cap", body: `{"quantity":1000}`, message: "must be 999 or less"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var input cart.UpdateQuantityInput
			err := DecodeJSONBody(jsonRequest(tc.body), &input)
			require.Error(t, err)

			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

			details, ok := typed.Details().(map[string]string)
			require.True(t, ok, "validation details must name the field")
			assert.Equal(t, tc.message, details["quantity"])
		})
	}

	var input cart.UpdateQuantityInput
	require.NoError(t, DecodeJSONBody(jsonRequest(`{"quantity":1}`), &input))
	assert.Equal(t, 1, input.Quantity)
}

func TestDecodeJSONBodyListsEveryBadField(t *testing.T) {
	var input cart.AddItemInput
	err := DecodeJSONBody(jsonRequest(`{"quantity":-1}`), &input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "product_id")
	assert.Contains(t, details, "quantity")
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var input cart.AddItemInput
	body := `{"product_id":"` + uuid.NewString() + `","quantity":1,"price_cents":1}`
	err := DecodeJSONBody(jsonRequest(body), &input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var input cart.UpdateQuantityInput
	err := DecodeJSONBody(jsonRequest(`{"quantity":`), &input)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
