// Package payment implements the payment method visibility function.
//
// When the buyer picked the configured delivery rate in any delivery group,
// the first payment method whose name differs from the configured method is
// hidden.
package payment

import "github.com/roach88/checkoutfn/internal/config"

// Name is the registry name of the function.
const Name = "payment"

// Config is the payment customization configuration.
type Config struct {
	// Method is the buyer-facing name of the method that stays visible.
	Method string `json:"method"`

	// Rate is the delivery option title that triggers hiding.
	Rate string `json:"rate"`
}

// Schema is the configuration schema.
var Schema = config.NewSchema(Name, "method", "rate")

// ParseConfig decodes the payment customization metafield value.
func ParseConfig(raw string) (Config, error) {
	return config.Decode[Config](raw, Schema)
}

// NoChanges returns the result emitted when the function is not configured.
func NoChanges() Result {
	return Result{Operations: []Operation{}}
}

// Run evaluates the function. The only error is a malformed configuration.
//
// A configured function always emits exactly one operation. When nothing is
// hidden that operation has no branch set, which the host treats as a no-op.
func Run(in Input) (Result, error) {
	mf := in.PaymentCustomization.Metafield
	if mf == nil {
		return NoChanges(), nil
	}
	cfg, err := ParseConfig(mf.Value)
	if err != nil {
		return Result{}, err
	}

	var op Operation
	if rateSelected(in.Cart.DeliveryGroups, cfg.Rate) {
		if m := firstOtherMethod(in.PaymentMethods, cfg.Method); m != nil {
			op.Hide = &HideOperation{PaymentMethodID: m.ID}
		}
	}
	return Result{Operations: []Operation{op}}, nil
}

// rateSelected reports whether any group's selected option is titled rate.
func rateSelected(groups []DeliveryGroup, rate string) bool {
	for _, g := range groups {
		opt := g.SelectedDeliveryOption
		if opt != nil && opt.Title != nil && *opt.Title == rate {
			return true
		}
	}
	return false
}

// firstOtherMethod returns the first method not named keep.
func firstOtherMethod(methods []PaymentMethod, keep string) *PaymentMethod {
	for i := range methods {
		if methods[i].Name != keep {
			return &methods[i]
		}
	}
	return nil
}
