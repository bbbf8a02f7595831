package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/novamart/storefront-backend/internal/catalog/source"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/metrics"
)

// State describes what the current snapshot represents. It lets callers
// tell "loaded with zero results" apart from "not loaded yet" and "the
// upstream failed".
type State string

const (
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateUnavailable State = "unavailable"
)

// Snapshot is one immutable view of the catalog.
type Snapshot struct {
	Products  []Product
	Index     Index
	State     State
	FetchedAt time.Time
}

type productSource interface {
	ListProducts(ctx context.Context) ([]source.RawProduct, error)
	GetProduct(ctx context.Context, id string) (*source.RawProduct, error)
}

// Service owns the catalog snapshot. Readers always see the last complete
// snapshot; a refresh in flight never exposes partial state.
type Service struct {
	source  productSource
	logg    *logger.Logger
	metrics *metrics.Metrics
	facets  []Definition

	mu         sync.Mutex
	snapshot   Snapshot
	generation uint64
}

// NewService builds a catalog service around the given upstream source.
func NewService(src productSource, logg *logger.Logger, met *metrics.Metrics) (*Service, error) {
	if src == nil {
		return nil, errors.New("product source required")
	}
	facets := DefaultFacets()
	return &Service{
		source:  src,
		logg:    logg,
		metrics: met,
		facets:  facets,
		snapshot: Snapshot{
			State: StateLoading,
			Index: BuildIndex(nil, facets),
		},
	}, nil
}

// Refresh fetches, maps, and indexes the upstream catalog, then swaps the
// snapshot. If a newer refresh started while this one was fetching, its
// response is discarded so stale data can never clobber newer state.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	start := time.Now()
	raws, err := s.source.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog refresh superseded, response discarded")
		}
		s.metrics.ObserveRefresh("superseded", time.Since(start))
		return nil
	}

	if err != nil {
		s.snapshot = Snapshot{
			State:     StateUnavailable,
			Index:     BuildIndex(nil, s.facets),
			FetchedAt: time.Now(),
		}
		s.metrics.ObserveRefresh("error", time.Since(start))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh catalog")
	}

	products, issues := MapAll(raws)
	if issues != nil && s.logg != nil {
		ctx := s.logg.WithField(ctx, "issues", issues.Error())
		s.logg.Warn(ctx, "catalog refresh mapped with anomalies")
	}

	s.snapshot = Snapshot{
		Products:  products,
		Index:     BuildIndex(products, s.facets),
		State:     StateReady,
		FetchedAt: time.Now(),
	}
	s.metrics.ObserveRefresh("ok", time.Since(start))
	return nil
}

// Snapshot returns the current catalog view.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// FilterProducts applies the selection (and optional free-text query) to the
// current snapshot.
func (s *Service) FilterProducts(state SelectionState, query string) ([]Product, State) {
	snap := s.Snapshot()
	filtered := Filter(snap.Products, snap.Index, state)
	if strings.TrimSpace(query) != "" {
		matched := filtered[:0:0]
		for _, product := range filtered {
			if MatchesQuery(product, query) {
				matched = append(matched, product)
			}
		}
		filtered = matched
	}
	return filtered, snap.State
}

// GetProduct resolves a product from the snapshot, falling back to the
// upstream detail endpoint when it is not cached yet.
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	snap := s.Snapshot()
	for i := range snap.Products {
		if snap.Products[i].ID == id {
			product := snap.Products[i]
			return &product, nil
		}
	}
	raw, err := s.source.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	product := MapProduct(*raw)
	return &product, nil
}

// StartRefreshLoop refreshes immediately and then on every tick until ctx
// is cancelled.
func (s *Service) StartRefreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		if err := s.Refresh(ctx); err != nil && s.logg != nil {
			s.logg.Error(ctx, "initial catalog refresh failed", err)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil && s.logg != nil {
					s.logg.Error(ctx, "catalog refresh failed", err)
				}
			}
		}
	}()
}
