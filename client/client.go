// Package client is a typed HTTP client for the ticketsmaster API, plus a
// session layer that keeps the browser-style view state (event cache, auth
// token, online/offline mode) in one place.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"ticketsmaster/models"
	"ticketsmaster/utils"
)

// APIError is a non-2xx response from a reachable server. It is distinct
// from transport errors on purpose: only the latter put the session into
// demo mode.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string

	mu    sync.Mutex
	token string

	// hc is the http client.
	hc *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,

		// set http client with timeout.
		hc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) getToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Register creates a new user account and returns its id.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	var reply struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/register", req, &reply); err != nil {
		return "", fmt.Errorf("Register: %w", err)
	}
	return reply.UserID, nil
}

// Login authenticates and remembers the returned token for later requests.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	return c.login(ctx, "/api/users/login", username, password)
}

// AdminLogin authenticates against the admin login endpoint.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	return c.login(ctx, "/api/admin/login", username, password)
}

func (c *Client) login(ctx context.Context, path, username, password string) (*models.LoginResponse, error) {
	var reply models.LoginResponse
	err := c.do(ctx, http.MethodPost, path, models.LoginRequest{
		Username: username,
		Password: password,
	}, &reply)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	c.SetToken(reply.Token)
	return &reply, nil
}

func (c *Client) Events(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, fmt.Errorf("Events: %w", err)
	}
	return events, nil
}

func (c *Client) Event(ctx context.Context, id string) (models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, "/api/events/"+id, nil, &event); err != nil {
		return models.Event{}, fmt.Errorf("Event: %w", err)
	}
	return event, nil
}

func (c *Client) CreateEvent(ctx context.Context, input models.EventInput) (models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", input, &event); err != nil {
		return models.Event{}, fmt.Errorf("CreateEvent: %w", err)
	}
	return event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, input models.EventInput) (models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodPut, "/api/events/"+id, input, &event); err != nil {
		return models.Event{}, fmt.Errorf("UpdateEvent: %w", err)
	}
	return event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/events/"+id, nil, nil); err != nil {
		return fmt.Errorf("DeleteEvent: %w", err)
	}
	return nil
}

// ResetEvents clears the catalog and returns the re-seeded sample set.
func (c *Client) ResetEvents(ctx context.Context) ([]models.Event, error) {
	var reply struct {
		Events []models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/events/reset", nil, &reply); err != nil {
		return nil, fmt.Errorf("ResetEvents: %w", err)
	}
	return reply.Events, nil
}

func (c *Client) Purchase(ctx context.Context, eventID string, quantity int) (models.PurchaseResult, error) {
	var result models.PurchaseResult
	err := c.do(ctx, http.MethodPost, "/api/events/"+eventID+"/purchase",
		models.PurchaseRequest{Quantity: quantity}, &result)
	if err != nil {
		return models.PurchaseResult{}, fmt.Errorf("Purchase: %w", err)
	}
	return result, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, fmt.Errorf("Users: %w", err)
	}
	return users, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/admin/users/"+id, nil, nil); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

func (c *Client) SavePaymentMethod(ctx context.Context, info models.PaymentInfo) error {
	err := c.do(ctx, http.MethodPost, "/api/users/payment",
		models.SavePaymentRequest{PaymentInfo: info}, nil)
	if err != nil {
		return fmt.Errorf("SavePaymentMethod: %w", err)
	}
	return nil
}

func (c *Client) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		return fmt.Errorf("Health: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("http.NewReq: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id, err := utils.RequestID(); err == nil {
		req.Header.Set("X-Request-Id", id)
	}
	if token := c.getToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var reply struct {
			Message string `json:"message"`
		}
		// Decode is best effort: the status code alone is a valid error.
		_ = json.NewDecoder(resp.Body).Decode(&reply)
		return &APIError{Status: resp.StatusCode, Message: reply.Message}
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}
	return nil
}
