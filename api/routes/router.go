package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novamart/storefront-backend/api/controllers"
	"github.com/novamart/storefront-backend/api/middleware"
	"github.com/novamart/storefront-backend/internal/cart"
	"github.com/novamart/storefront-backend/internal/catalog"
	"github.com/novamart/storefront-backend/internal/checkout"
	"github.com/novamart/storefront-backend/internal/wishlist"
	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/redis"
	"github.com/novamart/storefront-backend/pkg/session"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	catalogService *catalog.Service,
	cartService *cart.Service,
	wishlistService *wishlist.Service,
	checkoutCalc *checkout.Calculator,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, redisClient, catalogService, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.ListProducts(catalogService, logg))
			r.Get("/products/{productId}", controllers.GetProduct(catalogService, logg))
			r.Get("/facets", controllers.ListFacets(catalogService, logg))
			r.Post("/refresh", controllers.RefreshCatalog(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(sessionManager, logg))
			r.Get("/ping", controllers.SessionPing())

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(cartService, logg))
				r.Delete("/", controllers.ClearCart(cartService, logg))
				r.Post("/items", controllers.AddCartItem(cartService, logg))
				r.Put("/items/{itemKey}", controllers.UpdateCartItem(cartService, logg))
				r.Delete("/items/{itemKey}", controllers.RemoveCartItem(cartService, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.GetWishlist(wishlistService, logg))
				r.Delete("/", controllers.ClearWishlist(wishlistService, logg))
				r.Post("/items", controllers.AddWishlistItem(wishlistService, logg))
				r.Delete("/items/{productId}", controllers.RemoveWishlistItem(wishlistService, logg))
			})

			r.Post("/checkout/draft", controllers.CreateCheckoutDraft(checkoutCalc, cartService, logg))
		})
	})

	return r
}
