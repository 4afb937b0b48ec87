package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pocket-auth/internal/domain"
)

// DefaultTimeout acota toda llamada saliente del SDK.
const DefaultTimeout = 10 * time.Second

// APIError es el error decodificado del envelope del servidor.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

// APIClient habla el protocolo JSON del servicio de autenticación.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		// El timeout del http.Client acota la operación completa, incluida la
		// lectura del body; un timeout se reporta como fallo reintentable.
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Register crea una cuenta nueva y devuelve la vista pública del usuario.
func (c *APIClient) Register(ctx context.Context, email, password, name string) (domain.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	var data struct {
		User domain.PublicUser `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/auth/register", body, &data); err != nil {
		return domain.PublicUser{}, err
	}
	return data.User, nil
}

// Login autentica y devuelve el token junto con el usuario.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}
	var data struct {
		Token string            `json:"token"`
		User  domain.PublicUser `json:"user"`
	}
	if err := c.postJSON(ctx, "/api/auth/login", body, &data); err != nil {
		return "", domain.PublicUser{}, err
	}
	return data.Token, data.User, nil
}

// Me verifica el token contra el servidor y devuelve el usuario.
func (c *APIClient) Me(ctx context.Context, token string) (domain.PublicUser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/me", nil)
	if err != nil {
		return domain.PublicUser{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var data struct {
		User domain.PublicUser `json:"user"`
	}
	if err := c.do(req, &data); err != nil {
		return domain.PublicUser{}, err
	}
	return data.User, nil
}

// Do ejecuta una petición arbitraria con el timeout acotado del SDK,
// inyectando el bearer token cuando está presente.
func (c *APIClient) Do(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func (c *APIClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
}

func (c *APIClient) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *APIClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{Status: res.StatusCode, Code: "invalid_response", Message: "malformed server response"}
	}
	if !env.OK || res.StatusCode >= 400 {
		apiErr := &APIError{Status: res.StatusCode, Code: "unknown", Message: "request failed"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
