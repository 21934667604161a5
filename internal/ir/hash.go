package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainInvocation = "checkoutfn/invocation/v1"
	DomainOutput     = "checkoutfn/output/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InvocationID computes the content-addressed ID of invoking function on
// input. Inputs that differ only in key order, whitespace or null members
// share an ID.
func InvocationID(function string, input []byte) (string, error) {
	doc, err := DecodeJSON(input)
	if err != nil {
		return "", fmt.Errorf("InvocationID: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"function": function,
		"input":    doc,
	})
	if err != nil {
		return "", fmt.Errorf("InvocationID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainInvocation, canonical), nil
}

// OutputHash computes the content hash of an output document.
func OutputHash(output []byte) (string, error) {
	canonical, err := CanonicalizeJSON(output)
	if err != nil {
		return "", fmt.Errorf("OutputHash: %w", err)
	}
	return hashWithDomain(DomainOutput, canonical), nil
}

// MustInvocationID is like InvocationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustInvocationID(function string, input []byte) string {
	id, err := InvocationID(function, input)
	if err != nil {
		panic(err)
	}
	return id
}
