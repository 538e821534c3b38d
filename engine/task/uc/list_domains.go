package uc

import (
	"context"

	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/pkg/logger"
)

// ListDomains use case for enumerating the domain catalog.
type ListDomains struct {
	catalog *domain.Catalog
}

// NewListDomains creates a new list domains use case.
func NewListDomains(catalog *domain.Catalog) *ListDomains {
	return &ListDomains{catalog: catalog}
}

// Execute returns the catalog summaries in their canonical order.
func (uc *ListDomains) Execute(ctx context.Context) []domain.Summary {
	logger.FromContext(ctx).Debug("Listing domains", "count", len(uc.catalog.Keys()))
	return uc.catalog.List()
}
