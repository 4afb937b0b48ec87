package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"pocket-auth/internal/domain"
)

// Session es la fuente única de verdad del lado cliente sobre la sesión
// activa: token vigente, usuario resuelto y bandera de arranque.
type Session struct {
	api     *APIClient
	storage TokenStorage
	logger  *zap.Logger

	mu      sync.Mutex
	token   string
	user    *domain.PublicUser
	loading bool

	bootOnce sync.Once
}

func NewSession(api *APIClient, storage TokenStorage, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		api:     api,
		storage: storage,
		logger:  logger,
		loading: true,
	}
}

// Boot rehidrata la sesión persistida y la valida contra el servidor.
// Corre una sola vez por proceso y nunca devuelve error: todo camino de
// fallo termina en estado deslogueado con el storage limpio.
func (s *Session) Boot(ctx context.Context) {
	s.bootOnce.Do(func() {
		defer s.settle()

		token, err := s.storage.Load()
		if err != nil || token == "" {
			if err != nil {
				s.logger.Warn("token load failed", zap.Error(err))
			}
			s.clear()
			return
		}

		// Token adoptado de forma optimista mientras se consulta /me.
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()

		user, err := s.api.Me(ctx, token)
		if err != nil {
			s.logger.Info("persisted token rejected", zap.Error(err))
			_ = s.storage.Delete()
			s.clear()
			return
		}

		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
	})
}

// SignIn autentica contra el servidor y adopta token y usuario.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.storage.Save(token); err != nil {
		s.logger.Warn("token persist failed", zap.Error(err))
	}
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	return nil
}

// SignOut borra el token persistido y limpia el estado en memoria.
// Es idempotente; no hay llamada al servidor porque el token es stateless.
func (s *Session) SignOut(_ context.Context) error {
	err := s.storage.Delete()
	s.clear()
	return err
}

// Do ejecuta una petición autenticada inyectando el bearer token vigente.
func (s *Session) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	return s.api.Do(ctx, method, path, token, body)
}

// Token devuelve el token vigente, o cadena vacía si no hay sesión.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User devuelve el usuario resuelto y si hay sesión validada.
func (s *Session) User() (domain.PublicUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.PublicUser{}, false
	}
	return *s.user, true
}

// Loading indica si la rehidratación inicial sigue en curso.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// IsAPIError reporta si err proviene del servidor y expone su payload.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
