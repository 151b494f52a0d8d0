package templates

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/runbook-lint/pkg/types"
)

// Registry holds loaded templates and provides access by title.
type Registry struct {
	log     logrus.FieldLogger
	docs    []types.Document
	byTitle map[string]*types.Document
	mu      sync.RWMutex
}

// NewRegistry creates a new template registry and loads all embedded
// templates.
func NewRegistry(log logrus.FieldLogger) (*Registry, error) {
	log = log.WithField("component", "template_registry")

	docs, err := Load()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	byTitle := make(map[string]*types.Document, len(docs))
	for i := range docs {
		byTitle[docs[i].Title] = &docs[i]
	}

	log.WithField("template_count", len(docs)).Info("Template registry loaded")

	return &Registry{
		log:     log,
		docs:    docs,
		byTitle: byTitle,
	}, nil
}

// All returns all loaded templates.
func (r *Registry) All() []types.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to prevent external mutation.
	result := make([]types.Document, len(r.docs))
	copy(result, r.docs)

	return result
}

// Get returns a template by title, or nil if not found.
func (r *Registry) Get(title string) *types.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byTitle[title]
}

// Count returns the number of loaded templates.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.docs)
}
