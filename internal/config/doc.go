// Package config parses merchant configuration attached to a customization
// node as a metafield.
//
// A configuration is a JSON object whose members are matched against the
// declared fields of a Schema. Matching ignores case and word separators, so
// "Method", "METHOD" and "method" all bind to the field "method", and
// "payment_method" binds to "paymentMethod". Members the schema does not
// declare are ignored.
//
// The structural check is expressed in CUE: every Schema compiles to an open
// CUE struct with one string field per declared name, and the normalized
// document must unify with it and be concrete. A document that fails this
// check is malformed. Malformed configuration is a deployment error: callers
// must abort the invocation, never substitute defaults.
package config
