package config

// MetafieldTypeJSON is the host metafield type for configuration values.
const MetafieldTypeJSON = "json"

// Metafield is a host-supplied key-value attachment. On a customization node
// its Value carries the raw configuration text; on a customer it carries an
// attribute such as a discount rate.
type Metafield struct {
	Value string `json:"value"`
}

// MetafieldInput is the metafield a merchant attaches to a customization or
// discount node when creating it. The function later reads Value back
// through its input query.
type MetafieldInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// NewMetafieldInput wraps a configuration value built by Build.
func NewMetafieldInput(namespace, key, value string) MetafieldInput {
	return MetafieldInput{
		Namespace: namespace,
		Key:       key,
		Type:      MetafieldTypeJSON,
		Value:     value,
	}
}
