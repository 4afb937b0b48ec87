package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSGate decide qué orígenes reciben respuestas cross-origin con
// credenciales. La lista exacta viene de configuración; además se aceptan
// orígenes de LAN privada y cualquier origen https.
type CORSGate struct {
	allowed map[string]struct{}
}

func NewCORSGate(origins []string) *CORSGate {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return &CORSGate{allowed: allowed}
}

// AllowOrigin devuelve el valor efectivo de Access-Control-Allow-Origin.
func (g *CORSGate) AllowOrigin(origin string) string {
	if origin == "" {
		return "*"
	}
	if _, ok := g.allowed[origin]; ok {
		return origin
	}
	if strings.HasPrefix(origin, "http://192.168.") {
		return origin
	}
	if strings.HasPrefix(origin, "https://") {
		return origin
	}
	return "*"
}

// Middleware emite el juego de headers CORS en toda respuesta, incluidas las
// de error, y corta los preflight OPTIONS con 204.
func (g *CORSGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		effective := g.AllowOrigin(origin)

		h := c.Writer.Header()
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Origin", effective)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		// Credenciales solo con un origen concreto: los navegadores rechazan
		// la combinación wildcard + credentials.
		if effective != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
