package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sirawitp/siamshop-backend/api/controllers"
	"github.com/sirawitp/siamshop-backend/api/middleware"
	addresssvc "github.com/sirawitp/siamshop-backend/internal/address"
	authsvc "github.com/sirawitp/siamshop-backend/internal/auth"
	cartsvc "github.com/sirawitp/siamshop-backend/internal/cart"
	checkoutsvc "github.com/sirawitp/siamshop-backend/internal/checkout"
	ordersvc "github.com/sirawitp/siamshop-backend/internal/orders"
	productsvc "github.com/sirawitp/siamshop-backend/internal/products"
	reportsvc "github.com/sirawitp/siamshop-backend/internal/reports"
	usersvc "github.com/sirawitp/siamshop-backend/internal/users"
	"github.com/sirawitp/siamshop-backend/pkg/auth/session"
	"github.com/sirawitp/siamshop-backend/pkg/config"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
)

// Deps carries everything the HTTP surface needs. cmd/api assembles one.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Redis    controllers.Pinger
	Sessions session.AccessSessionChecker
	Events   controllers.EventSubscriber

	Auth     authsvc.Service
	Products productsvc.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Users    usersvc.Service
	Reports  reportsvc.Service
	Address  addresssvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})
		r.Route("/address", func(r chi.Router) {
			r.Get("/provinces", controllers.ListProvinces(deps.Address, logg))
			r.Get("/districts", controllers.ListDistricts(deps.Address, logg))
		})
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(deps.Auth, logg))
		r.Post("/login", controllers.Login(deps.Auth, logg))
		r.Post("/refresh", controllers.Refresh(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.Logout(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.ViewCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Put("/items/{productId}", controllers.SetCartItemQuantity(deps.Cart, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.SubmitCheckout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(deps.Orders, logg))
			r.Get("/stream", controllers.StreamMyOrders(deps.Events, logg))
			r.Get("/{orderId}", controllers.GetMyOrder(deps.Orders, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		// Managers read the dashboards; every mutation stays admin-only.
		staff := middleware.RequireStaff(logg)
		adminOnly := middleware.RequireRole(enums.RoleAdmin, logg)

		r.Route("/orders", func(r chi.Router) {
			r.With(staff).Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.With(staff).Get("/stream", controllers.StreamAllOrders(deps.Events, logg))
			r.With(staff).Get("/{orderId}", controllers.AdminGetOrder(deps.Orders, logg))
			r.With(adminOnly).Patch("/{orderId}", controllers.AdminUpdateOrder(deps.Orders, logg))
		})

		r.With(staff).Get("/reports/sales", controllers.AdminSalesReport(deps.Reports, logg))

		r.Route("/products", func(r chi.Router) {
			r.With(staff).Get("/", controllers.AdminListProducts(deps.Products, logg))
			r.With(adminOnly).Post("/", controllers.AdminCreateProduct(deps.Products, logg))
			r.With(adminOnly).Patch("/{productId}", controllers.AdminUpdateProduct(deps.Products, logg))
			r.With(adminOnly).Delete("/{productId}", controllers.AdminDeleteProduct(deps.Products, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", controllers.AdminListUsers(deps.Users, logg))
			r.Patch("/{userId}/role", controllers.AdminUpdateUserRole(deps.Users, logg))
			r.Delete("/{userId}", controllers.AdminDeleteUser(deps.Users, logg))
		})
	})

	return r
}
