package delivery

import "github.com/roach88/checkoutfn/internal/config"

// Input is the snapshot the host supplies for one delivery evaluation.
type Input struct {
	Cart                  Cart          `json:"cart"`
	DeliveryCustomization Customization `json:"deliveryCustomization"`
}

// Cart carries the delivery groups of the checkout.
type Cart struct {
	DeliveryGroups []DeliveryGroup `json:"deliveryGroups"`
}

// DeliveryGroup is one shipment with its address and offered options.
type DeliveryGroup struct {
	DeliveryAddress *Address         `json:"deliveryAddress,omitempty"`
	DeliveryOptions []DeliveryOption `json:"deliveryOptions"`
}

// Address is the shipping address of a group.
type Address struct {
	Zip *string `json:"zip,omitempty"`
}

// DeliveryOption is a rate offered for a group.
type DeliveryOption struct {
	Handle string  `json:"handle"`
	Title  *string `json:"title,omitempty"`
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

// HideOperation hides a delivery option.
type HideOperation struct {
	DeliveryOptionHandle string `json:"deliveryOptionHandle"`
}

// MoveOperation moves a delivery option to a new position.
type MoveOperation struct {
	DeliveryOptionHandle string `json:"deliveryOptionHandle"`
	Index                int    `json:"index"`
}

// RenameOperation gives a delivery option a new title.
type RenameOperation struct {
	DeliveryOptionHandle string `json:"deliveryOptionHandle"`
	Title                string `json:"title"`
}
