package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// Build renders values as the metafield value text that Parse accepts for
// schema. Names are bound to fields the way Parse binds members, every
// declared field must be given, and names the schema does not declare are
// rejected. The output has sorted keys and no insignificant whitespace, so
// equal configurations always render to the same text.
func Build(schema Schema, values map[string]string) (string, error) {
	folder := cases.Fold()

	declared := make(map[string]string, len(schema.fields))
	for _, f := range schema.fields {
		declared[foldKey(folder, f)] = f
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := make(map[string]string, len(schema.fields))
	boundBy := make(map[string]string, len(schema.fields))
	for _, name := range names {
		field, ok := declared[foldKey(folder, name)]
		if !ok {
			return "", &Error{
				Schema:  schema.name,
				Message: fmt.Sprintf("%q is not a field of this configuration (fields: %v)", name, schema.fields),
			}
		}
		if prev, dup := boundBy[field]; dup {
			return "", &Error{
				Schema:  schema.name,
				Field:   field,
				Message: fmt.Sprintf("values %q and %q both bind to this field", prev, name),
			}
		}
		boundBy[field] = name
		doc[field] = values[name]
	}

	for _, f := range schema.fields {
		if _, ok := doc[f]; !ok {
			return "", &Error{Schema: schema.name, Field: f, Message: "value is required"}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", &Error{Schema: schema.name, Message: "encode", Err: err}
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}
