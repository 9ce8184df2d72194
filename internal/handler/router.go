package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the API handlers mounted by NewRouter.
type Handlers struct {
	Availability *api.AvailabilityHandler
	Settings     *api.SettingsHandler
	Bookings     *api.BookingHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.RequestLogger())
	engine.Use(middleware.HTTPMetrics())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireStaff()}

	apiGroup := engine.Group("/api")
	{
		availability := apiGroup.Group("/availability")
		addRoutes(availability, []route{
			{Method: http.MethodGet, Path: "/slots", Handler: h.Availability.Slots, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/tables", Handler: h.Availability.Tables, Mw: staff},
		})

		settings := apiGroup.Group("/settings")
		addRoutes(settings, []route{
			{Method: http.MethodGet, Path: "/schedule", Handler: h.Settings.GetSchedule},
			{Method: http.MethodPut, Path: "/schedule", Handler: h.Settings.UpdateSchedule, Mw: staff},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			{Method: http.MethodGet, Path: "/me", Handler: h.Bookings.ListMine, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
		})

		admin := apiGroup.Group("/admin/bookings")
		admin.Use(staff...)
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Bookings.List},
				{Method: http.MethodGet, Path: "/:groupId", Handler: h.Bookings.Get},
				{Method: http.MethodPut, Path: "/:groupId", Handler: h.Bookings.Update},
				{Method: http.MethodDelete, Path: "/:groupId", Handler: h.Bookings.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
