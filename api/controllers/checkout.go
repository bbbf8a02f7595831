package controllers

import (
	"net/http"

	"github.com/novamart/storefront-backend/api/responses"
	"github.com/novamart/storefront-backend/api/validators"
	checkoutsvc "github.com/novamart/storefront-backend/internal/checkout"
	pkgerrors "github.com/novamart/storefront-backend/pkg/errors"
	"github.com/novamart/storefront-backend/pkg/logger"
)

type checkoutDraftRequest struct {
	Contact checkoutsvc.Contact `json:"contact" validate:"required"`
	Address checkoutsvc.Address `json:"address" validate:"required"`
}

// CreateCheckoutDraft prices the current cart into an order draft. The cart
// itself is left untouched; drafting is a read.
func CreateCheckoutDraft(calc *checkoutsvc.Calculator, carts cartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calc == nil || carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		session, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var payload checkoutDraftRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := carts.Get(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := calc.BuildDraft(r.Context(), payload.Contact, payload.Address, view.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}
