package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oakhollow/orderdesk-backend/api/controllers"
	"github.com/oakhollow/orderdesk-backend/api/middleware"
	authsvc "github.com/oakhollow/orderdesk-backend/internal/auth"
	cartsvc "github.com/oakhollow/orderdesk-backend/internal/cart"
	catalogsvc "github.com/oakhollow/orderdesk-backend/internal/catalog"
	draftsvc "github.com/oakhollow/orderdesk-backend/internal/drafts"
	membersvc "github.com/oakhollow/orderdesk-backend/internal/memberships"
	ordersvc "github.com/oakhollow/orderdesk-backend/internal/orders"
	productsvc "github.com/oakhollow/orderdesk-backend/internal/products"
	profilesvc "github.com/oakhollow/orderdesk-backend/internal/profiles"
	storesvc "github.com/oakhollow/orderdesk-backend/internal/stores"
	"github.com/oakhollow/orderdesk-backend/pkg/auth/session"
	"github.com/oakhollow/orderdesk-backend/pkg/config"
	"github.com/oakhollow/orderdesk-backend/pkg/logger"
	"github.com/oakhollow/orderdesk-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth     authsvc.Service
	Catalog  catalogsvc.Service
	Cart     *cartsvc.Service
	Orders   ordersvc.Service
	Drafts   *draftsvc.Service
	Products productsvc.Service
	Stores   storesvc.Service
	Members  membersvc.Service
	Profiles profilesvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	readyChecks map[string]func() error,
	redisClient *redis.Client,
	sessions *session.Manager,
	metricsHandler http.Handler,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readyChecks, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogBrowse(svcs.Catalog, logg))
			r.Get("/facets", controllers.CatalogFacets(svcs.Catalog, logg))
			r.Get("/matrices", controllers.CatalogMatrices(svcs.Catalog, logg))
			r.Get("/products/{productID}", controllers.ProductGet(svcs.Products, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(svcs.Cart, logg))
			r.Put("/", controllers.CartReplace(svcs.Cart, logg))
			r.Post("/items", controllers.CartAdd(svcs.Cart, logg))
			r.Patch("/items/{productID}", controllers.CartAdjust(svcs.Cart, logg))
			r.Delete("/items/{productID}", controllers.CartRemove(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderSubmit(svcs.Orders, logg))
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{orderID}", controllers.OrderGet(svcs.Orders, logg))
		})

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", controllers.DraftList(svcs.Drafts, logg))
			r.Put("/{docID}", controllers.DraftSave(svcs.Drafts, logg))
			r.Get("/{docID}", controllers.DraftGet(svcs.Drafts, logg))
			r.Delete("/{docID}", controllers.DraftDelete(svcs.Drafts, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(svcs.Profiles, logg))
			r.Put("/", controllers.ProfileUpdate(svcs.Profiles, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreTree(svcs.Stores, logg))
			r.Get("/{storeID}", controllers.StoreGet(svcs.Stores, logg))
			r.Put("/{storeID}", controllers.StoreUpdate(svcs.Stores, svcs.Auth, logg))

			r.Route("/{storeID}/members", func(r chi.Router) {
				r.Get("/", controllers.MemberList(svcs.Members, svcs.Auth, logg))
				r.Post("/", controllers.MemberInvite(svcs.Members, svcs.Auth, logg))
				r.Put("/{userID}/role", controllers.MemberChangeRole(svcs.Members, svcs.Auth, logg))
				r.Put("/{userID}/status", controllers.MemberSetStatus(svcs.Members, svcs.Auth, logg))
				r.Put("/{userID}/name", controllers.MemberRename(svcs.Profiles, svcs.Auth, logg))
				r.Delete("/{userID}", controllers.MemberRemove(svcs.Members, svcs.Auth, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Post("/", controllers.ProductCreate(svcs.Products, logg))
			r.Get("/{productID}", controllers.ProductGet(svcs.Products, logg))
			r.Patch("/{productID}", controllers.ProductUpdate(svcs.Products, logg))
			r.Post("/{productID}/duplicate", controllers.ProductDuplicate(svcs.Products, logg))
			r.Put("/{productID}/status", controllers.ProductStatus(svcs.Products, logg))
			r.Delete("/{productID}", controllers.ProductDelete(svcs.Products, logg))
		})

		r.Route("/stores", func(r chi.Router) {
			r.Post("/", controllers.StoreCreate(svcs.Stores, logg))
			r.Delete("/{storeID}", controllers.StoreDelete(svcs.Stores, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(svcs.Orders, logg))
			r.Put("/{orderID}/status", controllers.AdminOrderStatus(svcs.Orders, logg))
		})
	})

	return r
}
