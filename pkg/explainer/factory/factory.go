package factory

import (
	"fmt"
	"math/rand"
	"time"

	"pdf-explainer-be/pkg/explainer"
)

// NewProvider selects the backend implementation by config value.
func NewProvider(providerType, baseURL string, timeout time.Duration) (explainer.Provider, error) {
	switch providerType {
	case "http":
		if baseURL == "" {
			baseURL = "http://localhost:5000" // Default
		}
		return explainer.NewHTTPProvider(baseURL, timeout), nil
	case "mock":
		return explainer.NewMockProvider(rand.New(rand.NewSource(time.Now().UnixNano()))), nil
	default:
		return nil, fmt.Errorf("unsupported explainer provider: %s", providerType)
	}
}
