package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bulkmandi/bulkmandi-backend/api/controllers"
	"github.com/bulkmandi/bulkmandi-backend/api/middleware"
	"github.com/bulkmandi/bulkmandi-backend/internal/auth"
	"github.com/bulkmandi/bulkmandi-backend/internal/grouporders"
	"github.com/bulkmandi/bulkmandi-backend/internal/materials"
	"github.com/bulkmandi/bulkmandi-backend/pkg/auth/session"
	"github.com/bulkmandi/bulkmandi-backend/pkg/config"
	"github.com/bulkmandi/bulkmandi-backend/pkg/db"
	"github.com/bulkmandi/bulkmandi-backend/pkg/enums"
	"github.com/bulkmandi/bulkmandi-backend/pkg/logger"
	"github.com/bulkmandi/bulkmandi-backend/pkg/metrics"
	"github.com/bulkmandi/bulkmandi-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	Sessions        session.AccessSessionChecker
	Metrics         *metrics.HTTPMetrics
	AuthService     auth.Service
	RegisterService auth.RegisterService
	Materials       materials.Service
	GroupOrders     grouporders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(cfg.CORS),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1/materials", func(r chi.Router) {
		r.Get("/", controllers.MaterialList(deps.Materials, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleBuyer), logg))
			r.Post("/", controllers.MaterialCreate(deps.Materials, logg))
			r.Get("/mine", controllers.MaterialListMine(deps.Materials, logg))
			r.Put("/{materialId}", controllers.MaterialUpdate(deps.Materials, logg))
			r.Delete("/{materialId}", controllers.MaterialDelete(deps.Materials, logg))
		})

		r.Get("/{materialId}", controllers.MaterialDetail(deps.Materials, logg))
	})

	r.Route("/api/v1/group-orders", func(r chi.Router) {
		r.Get("/", controllers.GroupOrderList(deps.GroupOrders, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Post("/", controllers.GroupOrderCreate(deps.GroupOrders, logg))
			r.Get("/organized", controllers.GroupOrderListOrganized(deps.GroupOrders, logg))
			r.Get("/joined", controllers.GroupOrderListJoined(deps.GroupOrders, logg))
			r.Post("/{orderId}/join", controllers.GroupOrderJoin(deps.GroupOrders, logg))
			r.Post("/{orderId}/confirm", controllers.GroupOrderConfirm(deps.GroupOrders, logg))
			r.Post("/{orderId}/cancel", controllers.GroupOrderCancel(deps.GroupOrders, logg))
			r.Post("/{orderId}/fulfill", controllers.GroupOrderFulfill(deps.GroupOrders, logg))
			r.Post("/{orderId}/complete", controllers.GroupOrderComplete(deps.GroupOrders, logg))
			r.Put("/{orderId}", controllers.GroupOrderUpdate(deps.GroupOrders, logg))
		})

		r.Get("/{orderId}", controllers.GroupOrderDetail(deps.GroupOrders, logg))
	})

	return r
}
