// Package responses defines API response types used by the HTTP handlers.
package responses

import (
	"time"

	"github.com/domeafavour/hello-ast/internal/markdown"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// TokensResponse is returned by the tokens endpoint.
type TokensResponse struct {
	Count  int              `json:"count"`
	Tokens []markdown.Token `json:"tokens"`
}
