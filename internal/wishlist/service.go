package wishlist

import (
	"context"
	"errors"
	"strings"

	"github.com/novamart/storefront-backend/internal/catalog"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/localstore"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/metrics"
)

const storeName = "wishlist"

type productResolver interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

type keyBuilder interface {
	SnapshotKey(kind, sessionID string) string
}

// View is the wishlist as returned to clients.
type View struct {
	Entries []Entry `json:"entries"`
	Count   int     `json:"count"`
}

// Service rehydrates the session wishlist, applies one mutation, and
// persists the result best effort.
type Service struct {
	snapshots *localstore.Store
	keys      keyBuilder
	catalog   productResolver
	logg      *logger.Logger
	metrics   *metrics.Metrics
}

// NewService wires the wishlist service.
func NewService(snapshots *localstore.Store, keys keyBuilder, resolver productResolver, logg *logger.Logger, met *metrics.Metrics) (*Service, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot store required")
	}
	if keys == nil {
		return nil, errors.New("key builder required")
	}
	return &Service{
		snapshots: snapshots,
		keys:      keys,
		catalog:   resolver,
		logg:      logg,
		metrics:   met,
	}, nil
}

// Get returns the current wishlist for the session.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(store), nil
}

// Add saves a product. Saving an already-saved product succeeds unchanged.
func (s *Service) Add(ctx context.Context, sessionID, productID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	entry, err := s.buildEntry(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := store.Add(entry); err != nil {
		return nil, err
	}
	s.metrics.IncStoreOp(storeName, "add")
	s.persist(ctx, sessionID, store)
	return s.view(store), nil
}

// Remove drops a product from the wishlist, idempotently.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.Remove(productID)
	s.metrics.IncStoreOp(storeName, "remove")
	s.persist(ctx, sessionID, store)
	return s.view(store), nil
}

// Clear empties the wishlist and drops the stored snapshot.
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	store := NewStore(nil)
	s.metrics.IncStoreOp(storeName, "clear")
	if err := s.snapshots.Delete(ctx, s.keys.SnapshotKey(storeName, sessionID)); err != nil {
		s.metrics.IncPersistFailure(storeName)
		if s.logg != nil {
			s.logg.Error(ctx, "clearing wishlist snapshot failed", err)
		}
	}
	return s.view(store), nil
}

func (s *Service) buildEntry(ctx context.Context, productID string) (Entry, error) {
	entry := Entry{ProductID: strings.TrimSpace(productID)}
	if s.catalog == nil {
		return entry, nil
	}
	product, err := s.catalog.GetProduct(ctx, entry.ProductID)
	if err != nil {
		return Entry{}, err
	}
	entry.Name = product.Name
	entry.Price = product.Price
	entry.InStock = product.InStock
	if len(product.Images) > 0 {
		entry.Image = product.Images[0]
	}
	return entry, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Store, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}
	var entries []Entry
	if _, err := s.snapshots.Load(ctx, s.keys.SnapshotKey(storeName, sessionID), &entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist snapshot")
	}
	return NewStore(entries), nil
}

func (s *Service) persist(ctx context.Context, sessionID string, store *Store) {
	err := s.snapshots.Save(ctx, s.keys.SnapshotKey(storeName, sessionID), store.Entries())
	if err == nil {
		return
	}
	s.metrics.IncPersistFailure(storeName)
	if s.logg != nil {
		s.logg.Error(ctx, "persisting wishlist snapshot failed", err)
	}
}

func (s *Service) view(store *Store) *View {
	return &View{
		Entries: store.Entries(),
		Count:   store.Len(),
	}
}
