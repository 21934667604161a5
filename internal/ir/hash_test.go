package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocationID_Deterministic(t *testing.T) {
	input := []byte(`{"cart":{"deliveryGroups":[]},"paymentMethods":[]}`)

	id1, err := InvocationID("payment", input)
	require.NoError(t, err)
	id2, err := InvocationID("payment", input)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)
}

func TestInvocationID_IgnoresFormatting(t *testing.T) {
	a := MustInvocationID("delivery", []byte(`{"a":"1","b":"2"}`))
	b := MustInvocationID("delivery", []byte("{\n  \"b\": \"2\",\n  \"a\": \"1\",\n  \"c\": null\n}"))
	assert.Equal(t, a, b)
}

func TestInvocationID_DistinguishesFunctionAndInput(t *testing.T) {
	input := []byte(`{}`)
	assert.NotEqual(t, MustInvocationID("payment", input), MustInvocationID("delivery", input))
	assert.NotEqual(t, MustInvocationID("payment", input), MustInvocationID("payment", []byte(`{"x":"y"}`)))
}

func TestInvocationID_DistinguishesNormalizationForms(t *testing.T) {
	precomposed := MustInvocationID("delivery", []byte("{\"title\":\"Caf\u00e9\"}"))
	decomposed := MustInvocationID("delivery", []byte("{\"title\":\"Cafe\u0301\"}"))
	assert.NotEqual(t, precomposed, decomposed)

	escaped := MustInvocationID("delivery", []byte(`{"title":"Caf\u00e9"}`))
	assert.Equal(t, precomposed, escaped)
}

func TestInvocationID_NullInput(t *testing.T) {
	assert.Equal(t, MustInvocationID("discount", []byte(`{}`)), MustInvocationID("discount", []byte(`null`)))
}

func TestInvocationID_InvalidInput(t *testing.T) {
	_, err := InvocationID("payment", []byte(`{`))
	require.Error(t, err)

	assert.Panics(t, func() { MustInvocationID("payment", []byte(`nope`)) })
}

func TestOutputHash(t *testing.T) {
	h1, err := OutputHash([]byte(`{"operations":[{}]}`))
	require.NoError(t, err)
	h2, err := OutputHash([]byte(`{ "operations" : [ {} ] }`))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := OutputHash([]byte(`{"operations":[]}`))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashWithDomain_Separation(t *testing.T) {
	data := []byte(`{}`)
	assert.NotEqual(t, hashWithDomain(DomainInvocation, data), hashWithDomain(DomainOutput, data))
}
