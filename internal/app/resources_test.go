package app_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_registry/internal/app"
	"hotel_registry/internal/domain"
	"hotel_registry/internal/storage/memory"
)

// ---- fakes ----

type fakeProviders struct {
	known   map[int64]domain.Provider
	gets    int
	failAll bool
}

func (f *fakeProviders) GetProvider(_ context.Context, id int64) (domain.Provider, error) {
	f.gets++
	if f.failAll {
		return domain.Provider{}, domain.ErrCommunication
	}
	p, ok := f.known[id]
	if !ok {
		return domain.Provider{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProviders) CreateProvider(_ context.Context, p domain.Provider) (domain.Provider, error) {
	if f.failAll {
		return domain.Provider{}, domain.ErrCommunication
	}
	p.ID = int64(len(f.known) + 100)
	f.known[p.ID] = p
	return p, nil
}

func (f *fakeProviders) ProvidersByIDs(_ context.Context, ids []int64) ([]domain.Provider, error) {
	out := make([]domain.Provider, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.known[id])
	}
	return out, nil
}

type fakeCache struct {
	store map[string][]byte
	ttls  map[string]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.ttls[key] = ttlSec
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func newCatalog(p *fakeProviders, c domain.Cache) *app.ResourceCatalog {
	st := memory.New()
	return app.NewResourceCatalog(st, st.Resources(), p, c, 10*time.Minute)
}

func towels() domain.Resource {
	return domain.Resource{Name: "Towels", Description: "Bath towels", Price: ptr(3.5)}
}

// ---- tests ----

func TestResourceCatalog_CreateValidates(t *testing.T) {
	c := newCatalog(&fakeProviders{known: map[int64]domain.Provider{}}, nil)

	_, err := c.Create(ctx, domain.Resource{Name: "Towels", Description: "x"})
	assert.ErrorIs(t, err, domain.ErrIllegalOperation, "price required")

	res, err := c.Create(ctx, domain.Resource{Name: "Towels", Description: "x", Price: ptr(0.0), ProviderIDs: []int64{1}})
	require.NoError(t, err)
	assert.Empty(t, res.ProviderIDs, "links are only made through AssignProvider")
}

func TestResourceCatalog_ProviderLinks(t *testing.T) {
	p := &fakeProviders{known: map[int64]domain.Provider{7: {ID: 7, Name: "Linen Co"}}}
	cache := newFakeCache()
	c := newCatalog(p, cache)
	res, err := c.Create(ctx, towels())
	require.NoError(t, err)

	got, err := c.AssignProvider(ctx, res.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "Linen Co", got.Name)
	assert.Equal(t, 600, cache.ttls["provider:7"])

	_, err = c.AssignProvider(ctx, res.ID, 7)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)
	assert.Equal(t, 1, p.gets, "second lookup served from cache")

	_, err = c.AssignProvider(ctx, res.ID, 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.AssignProvider(ctx, 404, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := c.CreateProvider(ctx, res.ID, domain.Provider{Name: "Soap Ltd"})
	require.NoError(t, err)

	full, err := c.GetWithProviders(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, created.ID}, full.ProviderIDs)
	require.Len(t, full.Providers, 2)
	assert.Equal(t, "Soap Ltd", full.Providers[1].Name)

	_, err = c.RemoveProvider(ctx, res.ID, 7)
	require.NoError(t, err)
	_, err = c.RemoveProvider(ctx, res.ID, 7)
	assert.ErrorIs(t, err, domain.ErrIllegalOperation)

	require.NoError(t, c.UnlinkProvider(ctx, created.ID))
	_, ok := cache.store["provider:"+jsonID(created.ID)]
	assert.False(t, ok)
	stored, err := c.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProviderIDs)
}

func TestResourceCatalog_CommunicationFailure(t *testing.T) {
	p := &fakeProviders{known: map[int64]domain.Provider{}, failAll: true}
	c := newCatalog(p, nil)
	res, err := c.Create(ctx, towels())
	require.NoError(t, err)

	_, err = c.AssignProvider(ctx, res.ID, 7)
	assert.ErrorIs(t, err, domain.ErrCommunication)
	_, err = c.CreateProvider(ctx, res.ID, domain.Provider{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrCommunication)

	stored, err := c.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ProviderIDs)
}

func TestResourceCatalog_UpdateKeepsLinks(t *testing.T) {
	p := &fakeProviders{known: map[int64]domain.Provider{7: {ID: 7}}}
	c := newCatalog(p, nil)
	res, err := c.Create(ctx, towels())
	require.NoError(t, err)
	_, err = c.AssignProvider(ctx, res.ID, 7)
	require.NoError(t, err)

	out, err := c.Update(ctx, res.ID, domain.Resource{Name: "Robes", Description: "Bath robes", Price: ptr(9.0)})
	require.NoError(t, err)
	assert.Equal(t, "Robes", out.Name)
	assert.Equal(t, []int64{7}, out.ProviderIDs)

	require.NoError(t, c.Delete(ctx, res.ID))
	assert.ErrorIs(t, c.Delete(ctx, res.ID), domain.ErrNotFound)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
