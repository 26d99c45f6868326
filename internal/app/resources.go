package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_registry/internal/domain"
)

// ResourceCatalog keeps hotel resources and their links to providers held
// by the remote provider service. Provider details are read through the
// cache when one is configured.
type ResourceCatalog struct {
	tx        domain.Transactor
	resources domain.ResourceRepository
	providers domain.ProviderClient
	cache     domain.Cache
	cacheTTL  time.Duration
}

func NewResourceCatalog(tx domain.Transactor, r domain.ResourceRepository, p domain.ProviderClient, c domain.Cache, ttl time.Duration) *ResourceCatalog {
	return &ResourceCatalog{tx: tx, resources: r, providers: p, cache: c, cacheTTL: ttl}
}

func providerKey(id int64) string { return fmt.Sprintf("provider:%d", id) }

func (c *ResourceCatalog) List(ctx context.Context) (out []domain.Resource, err error) {
	defer func() { record("resources", "list", err) }()
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = c.resources.FindAll(ctx)
		return err
	})
	return out, err
}

func (c *ResourceCatalog) Get(ctx context.Context, id int64) (out domain.Resource, err error) {
	defer func() { record("resources", "get", err) }()
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err = c.find(ctx, id)
		return err
	})
	return out, err
}

func (c *ResourceCatalog) find(ctx context.Context, id int64) (domain.Resource, error) {
	r, err := c.resources.FindByID(ctx, id)
	if err != nil {
		return domain.Resource{}, missing(err, msgResourceNotFound)
	}
	return r, nil
}

// GetWithProviders returns the resource with its provider details fetched
// in one call to the provider service.
func (c *ResourceCatalog) GetWithProviders(ctx context.Context, id int64) (out domain.Resource, err error) {
	defer func() { record("resources", "get_with_providers", err) }()
	if out, err = c.Get(ctx, id); err != nil {
		return domain.Resource{}, err
	}
	if len(out.ProviderIDs) == 0 {
		return out, nil
	}
	ps, err := c.providers.ProvidersByIDs(ctx, out.ProviderIDs)
	if err != nil {
		return domain.Resource{}, err
	}
	out.Providers = ps
	return out, nil
}

func (c *ResourceCatalog) Create(ctx context.Context, r domain.Resource) (out domain.Resource, err error) {
	defer func() { record("resources", "create", err) }()
	if err = validateInput(r); err != nil {
		return domain.Resource{}, err
	}
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		r.ID = 0
		r.ProviderIDs = nil
		out, err = c.resources.Save(ctx, r)
		return err
	})
	if err == nil {
		log.Info().Int64("resource_id", out.ID).Msg("resource created")
	}
	return out, err
}

// Update replaces the resource fields; provider links are kept.
func (c *ResourceCatalog) Update(ctx context.Context, id int64, r domain.Resource) (out domain.Resource, err error) {
	defer func() { record("resources", "update", err) }()
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		stored, err := c.find(ctx, id)
		if err != nil {
			return err
		}
		if err := validateInput(r); err != nil {
			return err
		}
		r.ID = id
		r.ProviderIDs = stored.ProviderIDs
		out, err = c.resources.Save(ctx, r)
		return err
	})
	return out, err
}

func (c *ResourceCatalog) Delete(ctx context.Context, id int64) (err error) {
	defer func() { record("resources", "delete", err) }()
	return c.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := c.find(ctx, id); err != nil {
			return err
		}
		return c.resources.DeleteByID(ctx, id)
	})
}

// AssignProvider links an existing remote provider to the resource.
func (c *ResourceCatalog) AssignProvider(ctx context.Context, resourceID, providerID int64) (out domain.Provider, err error) {
	defer func() { record("resources", "assign_provider", err) }()
	if _, err = c.Get(ctx, resourceID); err != nil {
		return domain.Provider{}, err
	}
	if out, err = c.provider(ctx, providerID); err != nil {
		return domain.Provider{}, err
	}
	err = c.link(ctx, resourceID, out.ID)
	return out, err
}

// CreateProvider registers a new provider remotely and links it.
func (c *ResourceCatalog) CreateProvider(ctx context.Context, resourceID int64, p domain.Provider) (out domain.Provider, err error) {
	defer func() { record("resources", "create_provider", err) }()
	if _, err = c.Get(ctx, resourceID); err != nil {
		return domain.Provider{}, err
	}
	if out, err = c.providers.CreateProvider(ctx, p); err != nil {
		return domain.Provider{}, err
	}
	if c.cache != nil {
		_ = c.cache.Set(ctx, providerKey(out.ID), out, int(c.cacheTTL.Seconds()))
	}
	err = c.link(ctx, resourceID, out.ID)
	return out, err
}

func (c *ResourceCatalog) RemoveProvider(ctx context.Context, resourceID, providerID int64) (out domain.Provider, err error) {
	defer func() { record("resources", "remove_provider", err) }()
	if _, err = c.Get(ctx, resourceID); err != nil {
		return domain.Provider{}, err
	}
	if out, err = c.provider(ctx, providerID); err != nil {
		return domain.Provider{}, err
	}
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := c.find(ctx, resourceID)
		if err != nil {
			return err
		}
		if !r.HasProvider(providerID) {
			return illegal("provider not linked to this resource")
		}
		r.ProviderIDs = slices.DeleteFunc(r.ProviderIDs, func(id int64) bool { return id == providerID })
		_, err = c.resources.Save(ctx, r)
		return err
	})
	return out, err
}

// UnlinkProvider drops providerID from every resource, e.g. after the
// provider was removed from the provider service.
func (c *ResourceCatalog) UnlinkProvider(ctx context.Context, providerID int64) (err error) {
	defer func() { record("resources", "unlink_provider", err) }()
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		return c.resources.DeleteProviderLinks(ctx, providerID)
	})
	if err == nil && c.cache != nil {
		_ = c.cache.Del(ctx, providerKey(providerID))
	}
	return err
}

func (c *ResourceCatalog) link(ctx context.Context, resourceID, providerID int64) error {
	return c.tx.WithinTx(ctx, func(ctx context.Context) error {
		r, err := c.find(ctx, resourceID)
		if err != nil {
			return err
		}
		if r.HasProvider(providerID) {
			return illegal("provider already linked to this resource")
		}
		r.ProviderIDs = append(r.ProviderIDs, providerID)
		_, err = c.resources.Save(ctx, r)
		if err == nil {
			log.Info().Int64("resource_id", resourceID).Int64("provider_id", providerID).Msg("provider linked")
		}
		return err
	})
}

// provider reads one provider, cache first.
func (c *ResourceCatalog) provider(ctx context.Context, id int64) (domain.Provider, error) {
	var p domain.Provider
	if c.cache != nil {
		if ok, _ := c.cache.Get(ctx, providerKey(id), &p); ok {
			return p, nil
		}
	}
	p, err := c.providers.GetProvider(ctx, id)
	if err != nil {
		return domain.Provider{}, missing(err, "provider with the given id was not found")
	}
	if c.cache != nil {
		_ = c.cache.Set(ctx, providerKey(id), p, int(c.cacheTTL.Seconds()))
	}
	return p, nil
}
