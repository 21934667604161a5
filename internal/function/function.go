package function

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/roach88/checkoutfn/internal/config"
)

// Function is a checkout function with a JSON-in, JSON-out contract.
type Function interface {
	// Name is the registry name.
	Name() string

	// Description is a one-line summary for listings.
	Description() string

	// Invoke runs the function on one input document.
	Invoke(input []byte) ([]byte, error)

	// ParseConfig decodes a metafield value the way Invoke would.
	ParseConfig(raw string) (any, error)

	// ConfigFields lists the configuration fields, in declaration order.
	ConfigFields() []string

	// BuildConfig renders field values as a metafield value that
	// ParseConfig accepts.
	BuildConfig(values map[string]string) (string, error)
}

// Definition describes a function with typed input and output.
type Definition[In, Out, Cfg any] struct {
	Name        string
	Description string
	Schema      config.Schema
	Run         func(In) (Out, error)
	ParseConfig func(raw string) (Cfg, error)
}

// Typed adapts a Definition to the Function interface.
func Typed[In, Out, Cfg any](def Definition[In, Out, Cfg]) Function {
	return &typedFunction[In, Out, Cfg]{def: def}
}

type typedFunction[In, Out, Cfg any] struct {
	def Definition[In, Out, Cfg]
}

func (f *typedFunction[In, Out, Cfg]) Name() string {
	return f.def.Name
}

func (f *typedFunction[In, Out, Cfg]) Description() string {
	return f.def.Description
}

func (f *typedFunction[In, Out, Cfg]) Invoke(input []byte) ([]byte, error) {
	in, err := decodeInput[In](input)
	if err != nil {
		return nil, &Error{Code: CodeInvalidInput, Function: f.def.Name, Err: err}
	}

	out, err := f.def.Run(in)
	if err != nil {
		return nil, f.runError(err)
	}

	data, err := encodeOutput(out)
	if err != nil {
		return nil, &Error{Code: CodeEncodeFailed, Function: f.def.Name, Err: err}
	}
	return data, nil
}

func (f *typedFunction[In, Out, Cfg]) ParseConfig(raw string) (any, error) {
	cfg, err := f.def.ParseConfig(raw)
	if err != nil {
		return nil, f.runError(err)
	}
	return cfg, nil
}

func (f *typedFunction[In, Out, Cfg]) ConfigFields() []string {
	return f.def.Schema.Fields()
}

func (f *typedFunction[In, Out, Cfg]) BuildConfig(values map[string]string) (string, error) {
	raw, err := config.Build(f.def.Schema, values)
	if err != nil {
		return "", f.runError(err)
	}
	return raw, nil
}

func (f *typedFunction[In, Out, Cfg]) runError(err error) error {
	code := CodeFunctionFailed
	if config.IsMalformed(err) {
		code = CodeInvalidConfiguration
	}
	return &Error{Code: code, Function: f.def.Name, Err: err}
}

// decodeInput decodes one JSON document. Members the function does not read
// are ignored; a null document decodes to the zero input.
func decodeInput[In any](input []byte) (In, error) {
	var in In
	dec := json.NewDecoder(bytes.NewReader(input))
	if err := dec.Decode(&in); err != nil {
		return in, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return in, errTrailingData
	}
	return in, nil
}

// encodeOutput encodes without HTML escaping and without a trailing newline.
func encodeOutput(out any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
