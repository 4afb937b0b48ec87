package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pocket-auth/internal/service"
)

// allowedMethods alimenta el header Allow en respuestas 405.
var allowedMethods = map[string]string{
	"/api/auth/register": "POST, OPTIONS",
	"/api/auth/login":    "POST, OPTIONS",
	"/api/auth/me":       "GET, OPTIONS",
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	cors *CORSGate,
	authH *AuthHandler,
	jwtSvc *service.JWTService,
) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), cors.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.GET("/me", JWTAuthMiddleware(jwtSvc), authH.Me)

	r.NoMethod(func(c *gin.Context) {
		if allow, ok := allowedMethods[c.Request.URL.Path]; ok {
			c.Header("Allow", allow)
		}
		respondError(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
