package discount

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/checkoutfn/internal/config"
)

// TestUnconfiguredIsNoop verifies an unconfigured node never discounts.
// Property: Run(in without node metafield) == NoDiscount()
func TestUnconfiguredIsNoop(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("no configuration yields no discount", prop.ForAll(
		func(rate string, hasCustomer bool) bool {
			var cart Cart
			if hasCustomer {
				cart = customerWithRate(rate)
			}
			result, err := Run(Input{Cart: cart})
			return err == nil && len(result.Discounts) == 0 &&
				result.DiscountApplicationStrategy == StrategyFirst
		},
		gen.AnyString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestRateIsVerbatim verifies the customer rate reaches the output unchanged.
// Property: Run(configured(rate)).percentage == rate
func TestRateIsVerbatim(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("percentage equals customer metafield", prop.ForAll(
		func(rate string) bool {
			result, err := Run(Input{
				Cart:         customerWithRate(rate),
				DiscountNode: DiscountNode{Metafield: &config.Metafield{Value: "{}"}},
			})
			if err != nil || len(result.Discounts) != 1 {
				return false
			}
			return result.Discounts[0].Value.Percentage.Value == rate
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
