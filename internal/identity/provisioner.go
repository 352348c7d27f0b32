// Package identity wraps the hosted auth provider's admin REST API. The
// portal never stores credentials itself; logins live in the provider and
// this client only creates and deletes them.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrProvider wraps every failure of the provider's admin API so callers
// can classify it without inspecting HTTP details.
var ErrProvider = errors.New("identity: provider error")

// Provisioner creates and deletes authentication identities.
type Provisioner interface {
	Create(ctx context.Context, email, secret string, metadata map[string]string) (uuid.UUID, error)
	// Delete is idempotent: deleting an already-deleted identity is not
	// an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminClient talks to the provider's admin endpoints with a service key.
type AdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewAdminClient(baseURL, serviceKey string) *AdminClient {
	return &AdminClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type createIdentityRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

type createIdentityResponse struct {
	ID string `json:"id"`
}

func (c *AdminClient) Create(ctx context.Context, email, secret string, metadata map[string]string) (uuid.UUID, error) {
	payload := createIdentityRequest{
		Email:        email,
		Password:     secret,
		EmailConfirm: true,
		UserMetadata: metadata,
	}

	resp, err := c.makeRequest(ctx, http.MethodPost, "/admin/users", payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("%w: create identity returned status %d", ErrProvider, resp.StatusCode)
	}

	var body createIdentityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return uuid.Nil, fmt.Errorf("%w: decode create response: %v", ErrProvider, err)
	}

	id, err := uuid.Parse(body.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: provider returned malformed id %q", ErrProvider, body.ID)
	}
	return id, nil
}

func (c *AdminClient) Delete(ctx context.Context, id uuid.UUID) error {
	resp, err := c.makeRequest(ctx, http.MethodDelete, "/admin/users/"+id.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	// 404 means the identity is already gone, which is the desired state.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: delete identity returned status %d", ErrProvider, resp.StatusCode)
	}
	return nil
}

func (c *AdminClient) makeRequest(ctx context.Context, method, endpoint string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	return c.httpClient.Do(req)
}
