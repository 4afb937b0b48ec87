package client

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// tokenFileName es la clave fija bajo la que se persiste el bearer token.
const tokenFileName = "token"

// TokenStorage abstrae la persistencia local del token de sesión.
// La selección de implementación ocurre una sola vez al arrancar; la lógica
// de sesión nunca pregunta por la plataforma.
type TokenStorage interface {
	Load() (string, error)
	Save(token string) error
	Delete() error
}

// NewDefaultStorage elige el almacenamiento según la capacidad disponible:
// archivo bajo el directorio de configuración del usuario, o memoria cuando
// no hay directorio utilizable.
func NewDefaultStorage() TokenStorage {
	dir, err := os.UserConfigDir()
	if err != nil {
		return NewMemoryTokenStorage()
	}
	return NewFileTokenStorage(filepath.Join(dir, "pocket-auth"))
}

type fileTokenStorage struct {
	dir string
}

func NewFileTokenStorage(dir string) TokenStorage {
	return &fileTokenStorage{dir: dir}
}

func (s *fileTokenStorage) path() string {
	return filepath.Join(s.dir, tokenFileName)
}

// Load devuelve cadena vacía sin error cuando no hay token guardado.
func (s *fileTokenStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *fileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path(), []byte(token), 0o600)
}

func (s *fileTokenStorage) Delete() error {
	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type memoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStorage() TokenStorage {
	return &memoryTokenStorage{}
}

func (s *memoryTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memoryTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryTokenStorage) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
