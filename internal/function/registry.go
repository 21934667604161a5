package function

import (
	"errors"
	"fmt"
	"sort"

	"github.com/roach88/checkoutfn/internal/delivery"
	"github.com/roach88/checkoutfn/internal/discount"
	"github.com/roach88/checkoutfn/internal/payment"
)

var errTrailingData = errors.New("unexpected data after input document")

// Registry maps names to functions. It is immutable after construction and
// safe for concurrent use.
type Registry struct {
	functions map[string]Function
}

// NewRegistry creates a registry. Duplicate names are a programming error.
func NewRegistry(fns ...Function) (*Registry, error) {
	r := &Registry{functions: make(map[string]Function, len(fns))}
	for _, fn := range fns {
		if _, dup := r.functions[fn.Name()]; dup {
			return nil, fmt.Errorf("duplicate function name %q", fn.Name())
		}
		r.functions[fn.Name()] = fn
	}
	return r, nil
}

// Default returns a registry holding the discount, payment and delivery
// functions.
func Default() *Registry {
	r, err := NewRegistry(
		Typed(Definition[discount.Input, discount.Result, discount.Config]{
			Name:        discount.Name,
			Schema:      discount.Schema,
			Description: "percentage discount on the order subtotal from the customer's rate",
			Run:         discount.Run,
			ParseConfig: discount.ParseConfig,
		}),
		Typed(Definition[payment.Input, payment.Result, payment.Config]{
			Name:        payment.Name,
			Schema:      payment.Schema,
			Description: "hide a payment method when a delivery rate is selected",
			Run:         payment.Run,
			ParseConfig: payment.ParseConfig,
		}),
		Typed(Definition[delivery.Input, delivery.Result, delivery.Config]{
			Name:        delivery.Name,
			Schema:      delivery.Schema,
			Description: "hide a delivery option when shipping to a zip code",
			Run:         delivery.Run,
			ParseConfig: delivery.ParseConfig,
		}),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named function on input.
func (r *Registry) Invoke(name string, input []byte) ([]byte, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, &Error{Code: CodeUnknownFunction, Function: name}
	}
	return fn.Invoke(input)
}
