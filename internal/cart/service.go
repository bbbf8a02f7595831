package cart

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

const storeName = "cart"

type productResolver interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

type keyBuilder interface {
	SnapshotKey(kind, sessionID string) string
}

// View is the cart as returned to clients, with derived totals.
type View struct {
	Items []LineItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// AddInput describes one add-to-cart request.
type AddInput struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Service rehydrates the session cart, applies one mutation, and persists
// the result. Persistence is best effort: a failed write is logged and
// counted but never fails the request.
type Service struct {
	snapshots *localstore.Store
	keys      keyBuilder
	catalog   productResolver
	logg      *logger.Logger
	metrics   *metrics.Metrics
}

// NewService wires the cart service. The catalog resolver may be nil only
// when adds always carry denormalized display fields.
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

// Get returns the current cart for the session.
func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(store), nil
}

// Add resolves the product, merges it into the cart, and persists.
func (s *Service) Add(ctx context.Context, sessionID string, input AddInput) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	item, err := s.buildItem(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := store.AddItem(item); err != nil {
		return nil, err
	}
	s.metrics.IncStoreOp(storeName, "add")
	s.persist(ctx, sessionID, store)
	return s.view(store), nil
}

// UpdateQuantity sets the quantity for one line; below one removes it.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemKey string, quantity int) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateQuantity(itemKey, quantity); err != nil {
		return nil, err
	}
	s.metrics.IncStoreOp(storeName, "update")
	s.persist(ctx, sessionID, store)
	return s.view(store), nil
}

// Remove deletes one line. Removing an absent line succeeds.
func (s *Service) Remove(ctx context.Context, sessionID, itemKey string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.RemoveItem(itemKey)
	s.metrics.IncStoreOp(storeName, "remove")
	s.persist(ctx, sessionID, store)
	return s.view(store), nil
}

// Clear empties the cart and drops its snapshot.
func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	store := NewStore(nil)
	s.metrics.IncStoreOp(storeName, "clear")
	if err := s.snapshots.Delete(ctx, s.keys.SnapshotKey(storeName, sessionID)); err != nil {
		s.metrics.IncPersistFailure(storeName)
		if s.logg != nil {
			s.logg.Error(ctx, "clearing cart snapshot failed", err)
		}
	}
	return s.view(store), nil
}

func (s *Service) buildItem(ctx context.Context, input AddInput) (LineItem, error) {
	item := LineItem{
		ProductID: strings.TrimSpace(input.ProductID),
		VariantID: strings.TrimSpace(input.VariantID),
		Quantity:  input.Quantity,
	}
	if s.catalog == nil {
		return item, nil
	}
	product, err := s.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		return LineItem{}, err
	}
	item.Name = product.Name
	item.UnitPrice = product.Price
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	if item.VariantID != "" {
		found := false
		for _, variant := range product.Variants {
			if variant.ID == item.VariantID {
				item.VariantLabel = variant.Label
				if variant.Price != nil {
					item.UnitPrice = *variant.Price
				}
				found = true
				break
			}
		}
		if !found {
			return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown product variant")
		}
	}
	return item, nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*Store, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}
	var items []LineItem
	if _, err := s.snapshots.Load(ctx, s.keys.SnapshotKey(storeName, sessionID), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}
	return NewStore(items), nil
}

func (s *Service) persist(ctx context.Context, sessionID string, store *Store) {
	err := s.snapshots.Save(ctx, s.keys.SnapshotKey(storeName, sessionID), store.Items())
	if err == nil {
		return
	}
	s.metrics.IncPersistFailure(storeName)
	if s.logg != nil {
		s.logg.Error(ctx, "persisting cart snapshot failed", err)
	}
}

func (s *Service) view(store *Store) *View {
	return &View{
		Items: store.Items(),
		Count: store.Count(),
		Total: store.Total(),
	}
}
