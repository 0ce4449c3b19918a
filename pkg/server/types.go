package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/cheapamd/camd/pkg/offering"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// OfferingsResponse is the envelope for GET /v1/offerings.
type OfferingsResponse struct {
	Offerings []offering.Offering `json:"offerings" yaml:"offerings"`
	Count     int                 `json:"count" yaml:"count"`
	Cached    bool                `json:"cached" yaml:"cached"`
	Timestamp time.Time           `json:"timestamp" yaml:"timestamp"`
}

// Config holds server configuration
type Config struct {
	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Cache configuration
	CacheMaxAge int // seconds, advertised via Cache-Control

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string
}
