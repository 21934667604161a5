package function

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/checkoutfn/internal/config"
	"github.com/roach88/checkoutfn/internal/payment"
)

func TestDefault_Names(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{"delivery", "discount", "payment"}, reg.Names())

	for _, name := range reg.Names() {
		fn, ok := reg.Lookup(name)
		require.True(t, ok)
		assert.Equal(t, name, fn.Name())
		assert.NotEmpty(t, fn.Description())
	}
}

func TestNewRegistry_Duplicate(t *testing.T) {
	fn := Typed(Definition[payment.Input, payment.Result, payment.Config]{
		Name:        "payment",
		Run:         payment.Run,
		ParseConfig: payment.ParseConfig,
	})
	_, err := NewRegistry(fn, fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate function name")
}

func TestInvoke(t *testing.T) {
	tests := []struct {
		name     string
		function string
		input    string
		want     string
	}{
		{
			name:     "discount unconfigured",
			function: "discount",
			input:    `{"cart":{},"discountNode":{}}`,
			want:     `{"discounts":[],"discountApplicationStrategy":"FIRST"}`,
		},
		{
			name:     "discount configured",
			function: "discount",
			input:    `{"cart":{"buyerIdentity":{"customer":{"metafield":{"value":"15.0"}}}},"discountNode":{"metafield":{"value":"{}"}}}`,
			want:     `{"discounts":[{"message":"Function order discount worked!","targets":[{"orderSubtotal":{"excludedVariantIds":[]}}],"value":{"percentage":{"value":"15.0"}}}],"discountApplicationStrategy":"FIRST"}`,
		},
		{
			name:     "payment hides",
			function: "payment",
			input:    `{"cart":{"deliveryGroups":[{"selectedDeliveryOption":{"title":"Express"}}]},"paymentMethods":[{"id":"A","name":"COD"},{"id":"B","name":"PayPal"}],"paymentCustomization":{"metafield":{"value":"{\"method\":\"COD\",\"rate\":\"Express\"}"}}}`,
			want:     `{"operations":[{"hide":{"paymentMethodId":"B"}}]}`,
		},
		{
			name:     "delivery zip mismatch",
			function: "delivery",
			input:    `{"cart":{"deliveryGroups":[{"deliveryAddress":{"zip":"00000"},"deliveryOptions":[{"handle":"h1","title":"Standard"},{"handle":"h2","title":"Express"}]}]},"deliveryCustomization":{"metafield":{"value":"{\"rate\":\"Standard\",\"zip\":\"90210\"}"}}}`,
			want:     `{"operations":[{}]}`,
		},
		{
			name:     "unknown members ignored",
			function: "payment",
			input:    `{"shop":{"id":1},"cart":{"cost":{"total":"9.99"}}}`,
			want:     `{"operations":[]}`,
		},
		{
			name:     "trailing whitespace",
			function: "payment",
			input:    "{}\n\t ",
			want:     `{"operations":[]}`,
		},
		{
			name:     "null document",
			function: "delivery",
			input:    `null`,
			want:     `{"operations":[]}`,
		},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := reg.Invoke(tt.function, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestInvoke_Errors(t *testing.T) {
	tests := []struct {
		name     string
		function string
		input    string
		code     ErrorCode
	}{
		{"unknown function", "shipping", `{}`, CodeUnknownFunction},
		{"empty input", "payment", ``, CodeInvalidInput},
		{"syntax error", "payment", `{"cart":`, CodeInvalidInput},
		{"wrong type", "payment", `{"paymentMethods":{}}`, CodeInvalidInput},
		{"trailing data", "payment", `{} {}`, CodeInvalidInput},
		{"trailing close brace", "payment", `{} }`, CodeInvalidInput},
		{"trailing close bracket", "payment", `{} ]`, CodeInvalidInput},
		{"trailing scalar", "delivery", `{} 1`, CodeInvalidInput},
		{"malformed config", "payment", `{"paymentCustomization":{"metafield":{"value":"{\"method\":\"COD\"}"}}}`, CodeInvalidConfiguration},
		{"non-object config", "discount", `{"discountNode":{"metafield":{"value":"[]"}}}`, CodeInvalidConfiguration},
	}

	reg := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := reg.Invoke(tt.function, []byte(tt.input))
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.code, Code(err))

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.function, fe.Function)
		})
	}
}

func TestIsConfigError(t *testing.T) {
	_, err := Default().Invoke("delivery", []byte(`{"deliveryCustomization":{"metafield":{"value":"nope"}}}`))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.True(t, config.IsMalformed(err))

	assert.False(t, IsConfigError(errors.New("other")))
	assert.False(t, IsConfigError(nil))
	assert.Equal(t, ErrorCode(""), Code(errors.New("other")))
}

func TestParseConfig(t *testing.T) {
	fn, ok := Default().Lookup("payment")
	require.True(t, ok)

	cfg, err := fn.ParseConfig(`{"method":"COD","rate":"Express"}`)
	require.NoError(t, err)
	assert.Equal(t, payment.Config{Method: "COD", Rate: "Express"}, cfg)

	_, err = fn.ParseConfig(`{"method":"COD"}`)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestBuildConfig(t *testing.T) {
	reg := Default()

	tests := []struct {
		function string
		values   map[string]string
		fields   []string
		want     string
	}{
		{"discount", nil, []string{}, `{}`},
		{"payment", map[string]string{"method": "Cash on Delivery (COD)", "rate": "Standard"}, []string{"method", "rate"}, `{"method":"Cash on Delivery (COD)","rate":"Standard"}`},
		{"delivery", map[string]string{"rate": "Express", "zip": "90210"}, []string{"rate", "zip"}, `{"rate":"Express","zip":"90210"}`},
	}

	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			fn, ok := reg.Lookup(tt.function)
			require.True(t, ok)
			assert.Equal(t, tt.fields, fn.ConfigFields())

			raw, err := fn.BuildConfig(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, raw)

			_, err = fn.ParseConfig(raw)
			require.NoError(t, err)
		})
	}
}

func TestBuildConfig_Invalid(t *testing.T) {
	fn, ok := Default().Lookup("delivery")
	require.True(t, ok)

	_, err := fn.BuildConfig(map[string]string{"rate": "Express"})
	require.Error(t, err)
	assert.Equal(t, CodeInvalidConfiguration, Code(err))

	_, err = fn.BuildConfig(map[string]string{"rate": "Express", "zip": "90210", "method": "COD"})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestError_Message(t *testing.T) {
	err := &Error{Code: CodeUnknownFunction, Function: "shipping"}
	assert.Equal(t, "shipping: UNKNOWN_FUNCTION", err.Error())

	err = &Error{Code: CodeInvalidInput, Function: "payment", Err: errors.New("EOF")}
	assert.Equal(t, "payment: INVALID_INPUT: EOF", err.Error())
}
