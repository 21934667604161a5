package discount

import "github.com/roach88/checkoutfn/internal/config"

// Input is the snapshot the host supplies for one discount evaluation.
type Input struct {
	Cart         Cart         `json:"cart"`
	DiscountNode DiscountNode `json:"discountNode"`
}

// Cart carries the buyer identity the discount rate is read from.
type Cart struct {
	BuyerIdentity *BuyerIdentity `json:"buyerIdentity,omitempty"`
}

// BuyerIdentity is the optional identity of the buyer.
type BuyerIdentity struct {
	Customer *Customer `json:"customer,omitempty"`
}

// Customer is a logged-in customer. Metafield holds the customer's rate.
type Customer struct {
	Metafield *config.Metafield `json:"metafield,omitempty"`
}

// DiscountNode is the customization node the merchant configuration hangs off.
type DiscountNode struct {
	Metafield *config.Metafield `json:"metafield,omitempty"`
}

// ApplicationStrategy controls how the host combines multiple discounts.
type ApplicationStrategy string

const (
	StrategyFirst   ApplicationStrategy = "FIRST"
	StrategyMaximum ApplicationStrategy = "MAXIMUM"
)

// Result is the function output.
type Result struct {
	Discounts                   []Discount          `json:"discounts"`
	DiscountApplicationStrategy ApplicationStrategy `json:"discountApplicationStrategy"`
}

// Discount is a single discount proposal.
type Discount struct {
	Message string   `json:"message,omitempty"`
	Targets []Target `json:"targets"`
	Value   Value    `json:"value"`
}

// Target selects what a discount applies to. Exactly one branch is set.
type Target struct {
	OrderSubtotal  *OrderSubtotalTarget  `json:"orderSubtotal,omitempty"`
	ProductVariant *ProductVariantTarget `json:"productVariant,omitempty"`
}

// OrderSubtotalTarget applies the discount to the order subtotal.
type OrderSubtotalTarget struct {
	ExcludedVariantIDs []string `json:"excludedVariantIds"`
}

// ProductVariantTarget applies the discount to one variant.
type ProductVariantTarget struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity,omitempty"`
}

// Value is the discount amount. Exactly one branch is set.
type Value struct {
	Percentage  *Percentage  `json:"percentage,omitempty"`
	FixedAmount *FixedAmount `json:"fixedAmount,omitempty"`
}

// Percentage is a percentage off, as decimal text.
type Percentage struct {
	Value string `json:"value"`
}

// FixedAmount is an amount off, as decimal text.
type FixedAmount struct {
	Amount string `json:"amount"`
}
