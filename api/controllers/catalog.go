package controllers

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/api/validators"
	"github.com/novamart/storefront-backend/internal/catalog"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/pagination"
)

type catalogService interface {
	Snapshot() catalog.Snapshot
	FilterProducts(state catalog.SelectionState, query string) ([]catalog.Product, catalog.State)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	Refresh(ctx context.Context) error
}

type productListResponse struct {
	State    string            `json:"state"`
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

type facetOptionResponse struct {
	Value string   `json:"value"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

type facetResponse struct {
	ID      string                `json:"id"`
	Label   string                `json:"label"`
	Kind    string                `json:"kind"`
	Options []facetOptionResponse `json:"options"`
}

// ListProducts returns the catalog filtered by the facet selections in the
// query string. An empty result with state "ready" means no products match;
// state alone distinguishes that from a catalog that never loaded.
func ListProducts(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap := svc.Snapshot()
		state := parseSelection(r, snap.Index.Definitions)
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		products, catalogState := svc.FilterProducts(state, query)
		total := len(products)
		params := pagination.Normalize(pagination.Params{Limit: limit, Offset: offset})
		start, end := pagination.Window(total, params)
		page := products[start:end]
		if page == nil {
			page = []catalog.Product{}
		}

		responses.WriteSuccess(w, productListResponse{
			State:    string(catalogState),
			Products: page,
			Total:    total,
			Limit:    params.Limit,
			Offset:   params.Offset,
		})
	}
}

// GetProduct returns one product by id.
func GetProduct(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ListFacets returns the current facet definitions and their options. When
// the catalog is unavailable the filter panel has nothing trustworthy to
// show, so this reports the failure instead of empty facets.
func ListFacets(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snap := svc.Snapshot()
		if snap.State == catalog.StateUnavailable {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnavailable, "catalog options unavailable"))
			return
		}

		facets := make([]facetResponse, 0, len(snap.Index.Definitions))
		for _, def := range snap.Index.Definitions {
			options := snap.Index.Options[def.ID]
			out := make([]facetOptionResponse, 0, len(options))
			for _, opt := range options {
				out = append(out, facetOptionResponse{Value: opt.Value, Min: opt.Min, Max: opt.Max})
			}
			facets = append(facets, facetResponse{
				ID:      def.ID,
				Label:   def.Label,
				Kind:    string(def.Kind),
				Options: out,
			})
		}

		// Echo the caller's selection with values no current option carries
		// dropped, so the filter panel never renders a dead checkbox.
		selection := snap.Index.Sanitize(parseSelection(r, snap.Index.Definitions))
		echoed := map[string][]string{}
		for facetID, values := range selection {
			list := make([]string, 0, len(values))
			for value := range values {
				list = append(list, value)
			}
			sort.Strings(list)
			echoed[facetID] = list
		}

		responses.WriteSuccess(w, map[string]any{
			"state":     string(snap.State),
			"facets":    facets,
			"selection": echoed,
		})
	}
}

// RefreshCatalog triggers a synchronous catalog refresh.
func RefreshCatalog(svc catalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap := svc.Snapshot()
		responses.WriteSuccess(w, map[string]any{
			"state":    string(snap.State),
			"products": len(snap.Products),
		})
	}
}

// parseSelection reads one query parameter per facet id. Values repeat
// (?brand=Acme&brand=Zen) or come comma separated (?brand=Acme,Zen).
func parseSelection(r *http.Request, defs []catalog.Definition) catalog.SelectionState {
	raw := map[string][]string{}
	query := r.URL.Query()
	for _, def := range defs {
		chunks, ok := query[def.ID]
		if !ok {
			continue
		}
		for _, chunk := range chunks {
			for _, value := range strings.Split(chunk, ",") {
				if value = strings.TrimSpace(value); value != "" {
					raw[def.ID] = append(raw[def.ID], value)
				}
			}
		}
	}
	return catalog.NewSelectionState(raw)
}
