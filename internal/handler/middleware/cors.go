package middleware

import (
	"log/slog"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"table-booking/internal/pkg/config"
)

// NewCORSMiddleware always exposes X-Request-ID so browser clients can quote it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	expose := cfg.ExposeHeaders
	if !slices.Contains(expose, requestIDHeader) {
		expose = append(slices.Clone(expose), requestIDHeader)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins, "AllowCredentials", cfg.AllowCredentials)
	return cors.New(corsCfg)
}
