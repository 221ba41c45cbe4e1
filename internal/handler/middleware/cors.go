package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"hotel-checkout/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware always admits the session header; the storefront cannot
// quote or check out without it.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeader(cfg.AllowHeaders, SessionHeader),
		ExposeHeaders:    withHeader(withHeader(cfg.ExposeHeaders, "Location"), RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if !slices.Contains(corsCfg.AllowMethods, http.MethodPatch) {
		slog.Warn("CORS does not allow PATCH, support edits from the browser will fail")
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins, "AllowHeaders", corsCfg.AllowHeaders)
	return cors.New(corsCfg)
}

func withHeader(headers []string, h string) []string {
	for _, existing := range headers {
		if http.CanonicalHeaderKey(existing) == http.CanonicalHeaderKey(h) {
			return headers
		}
	}
	return append(slices.Clone(headers), h)
}
