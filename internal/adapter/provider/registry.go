package provider

import (
	"net/http"
	"time"

	"github.com/Moxxcompany/lockbay/config"
	"github.com/Moxxcompany/lockbay/internal/core/ports"

	"github.com/rs/zerolog"
)

// Registry implements ports.ProviderRegistry over a static set of
// configured providers. Built once at startup; lookups are read-only.
type Registry struct {
	providers map[string]ports.PaymentProvider
}

// NewRegistry builds adapters for every configured provider.
func NewRegistry(cfg config.ProvidersConfig, log zerolog.Logger) *Registry {
	client := &http.Client{Timeout: 30 * time.Second}
	providers := make(map[string]ports.PaymentProvider, len(cfg))
	for name, pc := range cfg {
		providers[name] = NewHTTPProvider(name, pc.BaseURL, pc.APIKey, client, log)
	}
	return &Registry{providers: providers}
}

// Get resolves a provider adapter by name.
func (r *Registry) Get(name string) (ports.PaymentProvider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
