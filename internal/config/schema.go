package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Schema declares the fields of a configuration record. Every declared field
// is a required string.
type Schema struct {
	name   string
	fields []string
}

// NewSchema creates a schema named after the function it configures.
// Field names are given in their canonical camelCase spelling, which is also
// the JSON tag of the record they decode into.
func NewSchema(name string, fields ...string) Schema {
	return Schema{
		name:   name,
		fields: append([]string(nil), fields...),
	}
}

// Name returns the schema name.
func (s Schema) Name() string {
	return s.name
}

// Fields returns the declared field names in declaration order.
func (s Schema) Fields() []string {
	return append([]string{}, s.fields...)
}

// cueSource renders the schema as an open CUE struct.
func (s Schema) cueSource() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, f := range s.fields {
		fmt.Fprintf(&b, "\t%s: string\n", strconv.Quote(f))
	}
	b.WriteString("}\n")
	return b.String()
}

// normalize rebinds document members to declared field names and drops the
// members the schema does not declare. Two members binding the same field,
// whether spelled identically or only after folding, are malformed.
func (s Schema) normalize(doc []member) (map[string]any, error) {
	folder := cases.Fold()

	declared := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		declared[foldKey(folder, f)] = f
	}

	out := make(map[string]any, len(s.fields))
	boundBy := make(map[string]string, len(s.fields))
	for _, m := range doc {
		field, ok := declared[foldKey(folder, m.name)]
		if !ok {
			continue
		}
		if prev, dup := boundBy[field]; dup {
			return nil, &Error{
				Schema:  s.name,
				Field:   field,
				Message: fmt.Sprintf("members %q and %q both bind to this field", prev, m.name),
			}
		}
		boundBy[field] = m.name
		out[field] = m.value
	}
	return out, nil
}

// foldKey case-folds the NFC form of a member name and strips word
// separators.
func foldKey(folder cases.Caser, key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, folder.String(norm.NFC.String(key)))
}
