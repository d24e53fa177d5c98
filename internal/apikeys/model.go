package apikeys

import "time"

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ValidProvider reports whether provider is a supported LLM provider.
func ValidProvider(provider string) bool {
	switch provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return true
	}
	return false
}

// UserKey is a user-supplied provider API key, encrypted at rest.
// Masked is the only representation that leaves the server.
type UserKey struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Provider   string    `json:"provider"`
	Ciphertext string    `json:"-"`
	Masked     string    `json:"maskedKey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SharedKey is an admin-provisioned key that plus-tier users borrow
// when they have no key of their own. At most one shared key per
// provider is active at a time.
type SharedKey struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Provider   string    `json:"provider"`
	Ciphertext string    `json:"-"`
	Masked     string    `json:"maskedKey"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Key sources reported alongside resolved keys.
const (
	SourceUser   = "user"
	SourceShared = "shared"
)
