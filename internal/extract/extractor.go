package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Provider turns free-form text into shopping list items.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// ExtractItems parses the text and returns one entry per item.
	ExtractItems(ctx context.Context, text string) ([]string, error)
}

// Router manages extraction providers and routing
type Router struct {
	providers       map[string]Provider
	defaultProvider string
	mu              sync.RWMutex
}

// NewRouter creates a new extraction router
func NewRouter(defaultProvider string) *Router {
	return &Router{
		providers:       make(map[string]Provider),
		defaultProvider: defaultProvider,
	}
}

// RegisterProvider registers an extraction provider
func (r *Router) RegisterProvider(provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[provider.Name()] = provider
}

// GetProvider returns a provider by name
func (r *Router) GetProvider(name string) (Provider, error) {
	if name == "" {
		name = r.defaultProvider
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", name)
	}

	if !p.IsConfigured() {
		return nil, fmt.Errorf("provider not configured: %s", name)
	}

	return p, nil
}

// ListProviders returns list of configured provider names
func (r *Router) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var providers []string
	for name, p := range r.providers {
		if p.IsConfigured() {
			providers = append(providers, name)
		}
	}
	return providers
}

// DefaultProvider returns the default provider name
func (r *Router) DefaultProvider() string {
	return r.defaultProvider
}

// BuildPrompt constructs the extraction prompt for a text fragment.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("You extract shopping list items from informal text.\n")
	sb.WriteString("Return ONLY a JSON object of the form {\"items\": [\"item 1\", \"item 2\"]}.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- One entry per distinct item, keep quantities with the item (\"2 liters of milk\").\n")
	sb.WriteString("- Drop filler words, greetings and anything that is not an item.\n")
	sb.WriteString("- If no items are present, return {\"items\": []}.\n\n")
	sb.WriteString("Text:\n")
	sb.WriteString(text)
	return sb.String()
}

type itemsPayload struct {
	Items []string `json:"items"`
}

// ParseItems extracts the items array from a model reply. Models wrap JSON
// in markdown fences often enough that we strip them before decoding.
func ParseItems(output string) ([]string, error) {
	cleaned := strings.TrimSpace(output)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	// Tolerate leading prose before the JSON object.
	if idx := strings.Index(cleaned, "{"); idx > 0 {
		cleaned = cleaned[idx:]
	}

	var payload itemsPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	var items []string
	for _, item := range payload.Items {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}
