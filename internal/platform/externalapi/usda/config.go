// Package usda provides a client for the USDA FoodData Central API.
package usda

import "time"

// Config holds configuration for the FoodData Central client.
type Config struct {
	APIKey  string        // API key sent as the api_key query parameter
	BaseURL string        // Base URL for the API (e.g., "https://api.nal.usda.gov/fdc/v1")
	Timeout time.Duration // HTTP request timeout
}
