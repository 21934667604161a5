package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// Parse decodes raw into dst, which must be a pointer to a struct whose JSON
// tags match the schema's fields. Any structural mismatch returns an *Error.
func Parse(raw string, schema Schema, dst any) error {
	doc, err := decodeObject(raw)
	if err != nil {
		return &Error{Schema: schema.name, Message: "invalid JSON object", Err: err}
	}

	normalized, err := schema.normalize(doc)
	if err != nil {
		return err
	}

	data, err := json.Marshal(normalized)
	if err != nil {
		return &Error{Schema: schema.name, Message: "re-encode normalized document", Err: err}
	}

	ctx := cuecontext.New()

	shape := ctx.CompileString(schema.cueSource(), cue.Filename(schema.name+".cue"))
	if err := shape.Err(); err != nil {
		return &Error{Schema: schema.name, Message: "compile schema", Err: err}
	}

	expr, err := cuejson.Extract(schema.name+".json", data)
	if err != nil {
		return &Error{Schema: schema.name, Message: "extract document", Err: err}
	}

	value := shape.Unify(ctx.BuildExpr(expr))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return schemaError(schema.name, err)
	}

	if err := value.Decode(dst); err != nil {
		return &Error{Schema: schema.name, Message: "decode", Err: err}
	}
	return nil
}

// Decode is the generic form of Parse.
func Decode[T any](raw string, schema Schema) (T, error) {
	var cfg T
	if err := Parse(raw, schema, &cfg); err != nil {
		var zero T
		return zero, err
	}
	return cfg, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or with literal configuration.
func MustParse(raw string, schema Schema, dst any) {
	if err := Parse(raw, schema, dst); err != nil {
		panic(err)
	}
}

// member is one name/value pair of a JSON object, in document order.
type member struct {
	name  string
	value any
}

// decodeObject reads exactly one JSON object from raw. Members are returned
// in document order with repeated names kept, so that normalize can reject
// them.
func decodeObject(raw string) ([]member, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, errors.New("document is null")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("document is %s", describeToken(tok))
	}

	members := []member{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member name %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("member %q: %w", name, err)
		}
		members = append(members, member{name: name, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return members, nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "an array"
		}
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	}
	return fmt.Sprintf("%v", tok)
}

// schemaError converts the first CUE validation error into an *Error that
// names the offending field.
func schemaError(schema string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Schema: schema, Message: "does not match schema", Err: err}
	}

	first := errs[0]
	field := ""
	if path := first.Path(); len(path) > 0 {
		field = strings.Trim(path[len(path)-1], `"`)
	}

	format, args := first.Msg()
	return &Error{
		Schema:  schema,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
