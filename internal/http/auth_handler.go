package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pocket-auth/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticación.
type AuthHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	jwtServ  *service.JWTService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		userServ: userServ,
		jwtServ:  jwtServ,
	}
}

// Register maneja POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusUnprocessableEntity, map[string][]string{
			"body": {"malformed json body"},
		})
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidation(c, http.StatusUnprocessableEntity, verr.Fields)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, CodeEmailTaken, "email already in use")
		default:
			h.logger.Error("register failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		}
		return
	}

	respondData(c, http.StatusCreated, gin.H{"user": user.Public()})
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, http.StatusUnprocessableEntity, map[string][]string{
			"body": {"malformed json body"},
		})
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidation(c, http.StatusUnprocessableEntity, verr.Fields)
		case errors.Is(err, service.ErrInvalidCredentials):
			// Respuesta única para email desconocido y contraseña errónea.
			respondError(c, http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		}
		return
	}

	token, err := h.jwtServ.Issue(user)
	if err != nil {
		if errors.Is(err, service.ErrNoSigningKey) {
			h.logger.Error("jwt secret missing")
			respondError(c, http.StatusInternalServerError, CodeServerMisconfig, "server misconfigured")
			return
		}
		h.logger.Error("jwt issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		return
	}

	respondData(c, http.StatusOK, gin.H{"token": token, "user": user.Public()})
}

// Me maneja GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, CodeMissingToken, "missing token")
		return
	}

	user, err := h.userServ.GetByID(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// El usuario pudo ser borrado después de emitir el token.
			respondError(c, http.StatusNotFound, CodeUserNotFound, "user not found")
			return
		}
		h.logger.Error("me lookup failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user.Public()})
}
