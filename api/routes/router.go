package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rgarza/posdesk-backend/api/controllers"
	"github.com/rgarza/posdesk-backend/api/middleware"
	cartsvc "github.com/rgarza/posdesk-backend/internal/cart"
	checkoutsvc "github.com/rgarza/posdesk-backend/internal/checkout"
	prefsvc "github.com/rgarza/posdesk-backend/internal/preferences"
	productsvc "github.com/rgarza/posdesk-backend/internal/products"
	"github.com/rgarza/posdesk-backend/pkg/config"
	"github.com/rgarza/posdesk-backend/pkg/logger"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger
	Products    productsvc.Service
	Cart        cartsvc.Service
	Preferences prefsvc.Service
	Checkout    checkoutsvc.Service
	Metrics     prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DBPinger, d.RedisPinger))
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(d.Logger))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Products, d.Logger))
			r.Get("/{productId}", controllers.ProductDetail(d.Products, d.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Cart, d.Logger))
			r.Delete("/", controllers.CartClear(d.Cart, d.Logger))
			r.Post("/items", controllers.CartAddItem(d.Cart, d.Logger))
			r.Patch("/items/{productId}", controllers.CartUpdateQuantity(d.Cart, d.Logger))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Cart, d.Logger))
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", controllers.PreferencesFetch(d.Preferences, d.Logger))
			r.Put("/", controllers.PreferencesUpdate(d.Preferences, d.Logger))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(d.Checkout, d.Logger))
			r.Post("/card", controllers.CheckoutCardPreview(d.Checkout, d.Logger))
			r.Post("/submit", controllers.CheckoutSubmit(d.Checkout, d.Logger))
		})
	})

	return r
}
