// Package discount implements the order discount function.
//
// When the discount node carries a configuration, every order receives one
// percentage discount on its subtotal. The percentage is read from the
// customer's metafield and passed through as text; guests and customers
// without the metafield get "0.0".
package discount

import "github.com/roach88/checkoutfn/internal/config"

// Name is the registry name of the function.
const Name = "discount"

// Message is attached to every discount the function emits.
const Message = "Function order discount worked!"

// DefaultRate is used when the buyer has no rate metafield.
const DefaultRate = "0.0"

// Config is the discount node configuration. It declares no fields; its
// presence alone enables the function.
type Config struct{}

// Schema is the configuration schema.
var Schema = config.NewSchema(Name)

// ParseConfig decodes the discount node metafield value.
func ParseConfig(raw string) (Config, error) {
	return config.Decode[Config](raw, Schema)
}

// NoDiscount returns the result emitted when the function is not configured.
func NoDiscount() Result {
	return Result{
		Discounts:                   []Discount{},
		DiscountApplicationStrategy: StrategyFirst,
	}
}

// Run evaluates the function. The only error is a malformed configuration.
func Run(in Input) (Result, error) {
	mf := in.DiscountNode.Metafield
	if mf == nil {
		return NoDiscount(), nil
	}
	if _, err := ParseConfig(mf.Value); err != nil {
		return Result{}, err
	}

	return Result{
		Discounts: []Discount{{
			Message: Message,
			Targets: []Target{{
				OrderSubtotal: &OrderSubtotalTarget{ExcludedVariantIDs: []string{}},
			}},
			Value: Value{
				Percentage: &Percentage{Value: customerRate(in.Cart)},
			},
		}},
		DiscountApplicationStrategy: StrategyFirst,
	}, nil
}

// customerRate walks buyer identity, customer and metafield.
func customerRate(cart Cart) string {
	id := cart.BuyerIdentity
	if id == nil || id.Customer == nil || id.Customer.Metafield == nil {
		return DefaultRate
	}
	return id.Customer.Metafield.Value
}
