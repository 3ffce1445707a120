package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/sony/gobreaker/v2"
)

// TokenSource supplies the bearer token attached to every upstream call.
type TokenSource func() string

// HTTPRegistry talks to a remote client-registry REST service. Calls go
// through a circuit breaker so a flapping upstream fails fast instead
// of tying up checkout requests.
type HTTPRegistry struct {
	baseURL string
	client  *http.Client
	token   TokenSource
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func NewHTTPRegistry(baseURL string, token TokenSource) *HTTPRegistry {
	settings := gobreaker.Settings{
		Name:    "client-registry",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &HTTPRegistry{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		token:   token,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

func (h *HTTPRegistry) FindByDocument(ctx context.Context, microempresaID, document string) (*domain.Client, error) {
	path := fmt.Sprintf("/clientes/microempresa/%s/verificar-documento/%s",
		url.PathEscape(microempresaID), url.PathEscape(document))

	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var c domain.Client
		if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
			return nil, fmt.Errorf("decode client response: %w", err)
		}
		return &c, nil
	case http.StatusNotFound:
		return nil, ErrClientNotFound
	default:
		return nil, fmt.Errorf("client registry returned status %d", resp.StatusCode)
	}
}

func (h *HTTPRegistry) Create(ctx context.Context, c *domain.Client) error {
	resp, err := h.do(ctx, http.MethodPost, "/clientes/", c)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("client registry returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(c)
}

func (h *HTTPRegistry) Update(ctx context.Context, c *domain.Client) error {
	path := fmt.Sprintf("/clientes/%s", url.PathEscape(c.ID))
	resp, err := h.do(ctx, http.MethodPut, path, c)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrClientNotFound
	default:
		return fmt.Errorf("client registry returned status %d", resp.StatusCode)
	}
}

func (h *HTTPRegistry) List(ctx context.Context, microempresaID string) ([]*domain.Client, error) {
	path := fmt.Sprintf("/clientes/microempresa/%s", url.PathEscape(microempresaID))
	resp, err := h.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client registry returned status %d", resp.StatusCode)
	}

	var clients []*domain.Client
	if err := json.NewDecoder(resp.Body).Decode(&clients); err != nil {
		return nil, fmt.Errorf("decode client list: %w", err)
	}
	return clients, nil
}

func (h *HTTPRegistry) Deactivate(ctx context.Context, microempresaID, clientID string) error {
	path := fmt.Sprintf("/clientes/%s/desactivar", url.PathEscape(clientID))
	resp, err := h.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrClientNotFound
	default:
		return fmt.Errorf("client registry returned status %d", resp.StatusCode)
	}
}

func (h *HTTPRegistry) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build registry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := h.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.breaker.Execute(func() (*http.Response, error) {
		resp, err := h.client.Do(req)
		if err != nil {
			return nil, err
		}
		// 5xx trips the breaker; 4xx is the caller's problem.
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("client registry returned status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("client registry call failed: %w", err)
	}
	return resp, nil
}
