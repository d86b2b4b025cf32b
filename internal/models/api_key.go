package models

import (
	"strings"
	"time"
)

// APIKey is one stored third-party service credential.
type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Service   string    `json:"service"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// APIKeyRequest is the payload for creating an API key
type APIKeyRequest struct {
	Name    string `json:"name"`
	Service string `json:"service"`
}

// APIKeyResponse is the list representation of a key; the secret is masked.
type APIKeyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Service   string    `json:"service"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the request fields. The record line format uses '|' as a
// field separator, so separator and newline characters are rejected here to
// keep the encoding round-trippable.
func (r *APIKeyRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	service := strings.TrimSpace(r.Service)

	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if service == "" {
		return &ValidationError{Field: "service", Message: "service is required"}
	}
	if strings.ContainsAny(name, "|\r\n") {
		return &ValidationError{Field: "name", Message: "name must not contain '|' or newlines"}
	}
	if strings.ContainsAny(service, "|\r\n") {
		return &ValidationError{Field: "service", Message: "service must not contain '|' or newlines"}
	}

	return nil
}

// Masked returns the list representation with the secret reduced to
// its first and last four characters.
func (k *APIKey) Masked() *APIKeyResponse {
	return &APIKeyResponse{
		ID:        k.ID,
		Name:      k.Name,
		Service:   k.Service,
		Key:       MaskKey(k.Key),
		CreatedAt: k.CreatedAt,
	}
}

// MaskKey redacts a secret to "first4...last4". Secrets too short to slice
// safely are fully redacted.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// NormalizeService lowercases and trims a service identifier
func NormalizeService(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}

// EnvVarName maps a service identifier to the environment variable name its
// key is materialized under. Input is case-insensitive.
func EnvVarName(service string) string {
	switch NormalizeService(service) {
	case "perplexity", "pplx":
		return "PERPLEXITY_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "mapbox":
		return "MAPBOX_API_KEY"
	case "mls":
		return "MLS_API_KEY"
	default:
		return strings.ToUpper(NormalizeService(service)) + "_API_KEY"
	}
}
