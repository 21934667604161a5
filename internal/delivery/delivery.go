// Package delivery implements the delivery option visibility function.
//
// When any delivery group ships to the configured zip code, the first titled
// delivery option (across all groups, in order) whose title differs from the
// configured rate is hidden.
package delivery

import "github.com/roach88/checkoutfn/internal/config"

// Name is the registry name of the function.
const Name = "delivery"

// Config is the delivery customization configuration.
type Config struct {
	// Rate is the title of the option that stays visible.
	Rate string `json:"rate"`

	// Zip is the postal code that triggers hiding.
	Zip string `json:"zip"`
}

// Schema is the configuration schema.
var Schema = config.NewSchema(Name, "rate", "zip")

// ParseConfig decodes the delivery customization metafield value.
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
	mf := in.DeliveryCustomization.Metafield
	if mf == nil {
		return NoChanges(), nil
	}
	cfg, err := ParseConfig(mf.Value)
	if err != nil {
		return Result{}, err
	}

	groups := in.Cart.DeliveryGroups

	var op Operation
	if shipsTo(groups, cfg.Zip) {
		if opt := firstOtherOption(groups, cfg.Rate); opt != nil {
			op.Hide = &HideOperation{DeliveryOptionHandle: opt.Handle}
		}
	}
	return Result{Operations: []Operation{op}}, nil
}

// shipsTo reports whether any group's address has the given zip.
func shipsTo(groups []DeliveryGroup, zip string) bool {
	for _, g := range groups {
		addr := g.DeliveryAddress
		if addr != nil && addr.Zip != nil && *addr.Zip == zip {
			return true
		}
	}
	return false
}

// firstOtherOption returns the first titled option not titled keep.
// Untitled options are skipped.
func firstOtherOption(groups []DeliveryGroup, keep string) *DeliveryOption {
	for gi := range groups {
		opts := groups[gi].DeliveryOptions
		for oi := range opts {
			if t := opts[oi].Title; t != nil && *t != keep {
				return &opts[oi]
			}
		}
	}
	return nil
}
