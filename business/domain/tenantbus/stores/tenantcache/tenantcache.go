// Package tenantcache contains tenant related CRUD functionality with caching.
// Tenant lookups run on every tenant scoped request, so reads by id and slug
// are served from memory.
package tenantcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/autonet/business/domain/tenantbus"
	"github.com/jcpaschoal/autonet/business/sdk/order"
	"github.com/jcpaschoal/autonet/business/sdk/page"
	"github.com/jcpaschoal/autonet/business/sdk/sqldb"
	"github.com/jcpaschoal/autonet/business/types/slug"
	"github.com/jcpaschoal/autonet/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for tenant data and caching.
type Store struct {
	log    *logger.Logger
	storer tenantbus.Storer
	cache  *sturdyc.Client[tenantbus.Tenant]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer tenantbus.Storer, ttl time.Duration) *Store {
	const (
		capacity           = 10000
		numShards          = 10
		evictionPercentage = 10
	)

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[tenantbus.Tenant](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new tenant into the database.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Create(ctx, t); err != nil {
		return err
	}

	s.writeCache(t)

	return nil
}

// Update replaces a tenant document in the database.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Update(ctx, t); err != nil {
		return err
	}

	s.writeCache(t)

	return nil
}

// Delete removes a tenant from the database.
func (s *Store) Delete(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Delete(ctx, t); err != nil {
		return err
	}

	s.deleteCache(t)

	return nil
}

// Query retrieves a list of existing tenants from the database.
func (s *Store) Query(ctx context.Context, filter tenantbus.QueryFilter, orderBy order.By, page page.Page) ([]tenantbus.Tenant, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of tenants in the DB.
func (s *Store) Count(ctx context.Context, filter tenantbus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified tenant from the cache or database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	if t, exists := s.readCache(idKey(tenantID)); exists {
		return t, nil
	}

	t, err := s.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	s.writeCache(t)

	return t, nil
}

// QueryBySlug gets the tenant with the specified slug from the cache or database.
func (s *Store) QueryBySlug(ctx context.Context, slg slug.Slug) (tenantbus.Tenant, error) {
	if t, exists := s.readCache(slugKey(slg)); exists {
		return t, nil
	}

	t, err := s.storer.QueryBySlug(ctx, slg)
	if err != nil {
		return tenantbus.Tenant{}, err
	}

	s.writeCache(t)

	return t, nil
}

// =============================================================================

func (s *Store) readCache(key string) (tenantbus.Tenant, bool) {
	return s.cache.Get(key)
}

func (s *Store) writeCache(t tenantbus.Tenant) {
	s.cache.Set(idKey(t.ID), t)
	s.cache.Set(slugKey(t.Slug), t)
}

func (s *Store) deleteCache(t tenantbus.Tenant) {
	s.cache.Delete(idKey(t.ID))
	s.cache.Delete(slugKey(t.Slug))
}

func idKey(id uuid.UUID) string {
	return "id:" + id.String()
}

func slugKey(s slug.Slug) string {
	return "slug:" + s.String()
}
