package payment

import "github.com/roach88/checkoutfn/internal/config"

// Input is the snapshot the host supplies for one payment evaluation.
type Input struct {
	Cart                 Cart            `json:"cart"`
	PaymentMethods       []PaymentMethod `json:"paymentMethods"`
	PaymentCustomization Customization   `json:"paymentCustomization"`
}

// Cart carries the buyer's delivery selections.
type Cart struct {
	DeliveryGroups []DeliveryGroup `json:"deliveryGroups"`
}

// DeliveryGroup is one shipment of the cart.
type DeliveryGroup struct {
	SelectedDeliveryOption *DeliveryOption `json:"selectedDeliveryOption,omitempty"`
}

// DeliveryOption is the rate the buyer picked for a group.
type DeliveryOption struct {
	Title *string `json:"title,omitempty"`
}

// PaymentMethod is a payment method offered at checkout.
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Customization is the node the merchant configuration hangs off.
type Customization struct {
	Metafield *config.Metafield `json:"metafield,omitempty"`
}

// Result is the function output.
type Result struct {
	Operations []Operation `json:"operations"`
}

// Operation is a tagged choice. This function only ever sets Hide, and may
// leave every branch unset.
type Operation struct {
	Hide   *HideOperation   `json:"hide,omitempty"`
	Move   *MoveOperation   `json:"move,omitempty"`
	Rename *RenameOperation `json:"rename,omitempty"`
}

// HideOperation hides a payment method.
type HideOperation struct {
	PaymentMethodID string `json:"paymentMethodId"`
}

// MoveOperation moves a payment method to a new position.
type MoveOperation struct {
	PaymentMethodID string `json:"paymentMethodId"`
	Index           int    `json:"index"`
}

// RenameOperation gives a payment method a new buyer-facing name.
type RenameOperation struct {
	PaymentMethodID string `json:"paymentMethodId"`
	Name            string `json:"name"`
}
