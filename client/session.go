package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ticketsmaster/models"
)

// Session owns the view state a UI renders from: the cached event list, the
// authenticated user, and whether the client is in demo (offline) mode.
// State changes go through defined refresh points — after login, after every
// mutation, and on explicit Refresh — instead of ad-hoc mutation.
type Session struct {
	api     *Client
	breaker *Breaker

	mu      sync.Mutex
	events  []models.Event
	user    *models.User
	offline bool
}

func NewSession(api *Client) *Session {
	return &Session{
		api: api,
		// one transport failure flips to demo mode; probe again after 30s
		breaker: NewBreaker(1, 30*time.Second),
	}
}

// Events returns the cached event list.
func (s *Session) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}

// User returns the authenticated user, or nil before login.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Offline reports whether the session is running on demo data.
func (s *Session) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// Refresh reloads the event cache from the server, or from the demo set
// when the server is unreachable.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.breaker.Allow() {
		s.applyEvents(nil, errOffline)
		return nil
	}

	events, err := s.api.Events(ctx)
	return s.applyEvents(events, err)
}

// applyEvents is the single state transition for fetch results. A reachable
// server (success or API error) keeps the session online; only transport
// failures switch to the demo dataset.
func (s *Session) applyEvents(events []models.Event, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.breaker.Success()
		s.offline = false
		s.events = events
		return nil

	case isAPIError(err):
		s.breaker.Success()
		s.offline = false
		return err

	default:
		s.breaker.Failure()
		s.offline = true
		s.events = DemoEvents()
		return nil
	}
}

// Login authenticates and, on success, refreshes the event cache. While
// offline the fixed demo credentials are accepted locally.
func (s *Session) Login(ctx context.Context, username, password string) (models.User, error) {
	return s.login(ctx, username, password, false)
}

// AdminLogin is Login against the admin endpoint; in demo mode only the
// demo admin credentials are accepted.
func (s *Session) AdminLogin(ctx context.Context, username, password string) (models.User, error) {
	return s.login(ctx, username, password, true)
}

func (s *Session) login(ctx context.Context, username, password string, admin bool) (models.User, error) {
	if !s.breaker.Allow() {
		return s.demoLogin(username, password, admin)
	}

	var (
		reply *models.LoginResponse
		err   error
	)
	if admin {
		reply, err = s.api.AdminLogin(ctx, username, password)
	} else {
		reply, err = s.api.Login(ctx, username, password)
	}

	if err != nil {
		if isAPIError(err) {
			s.breaker.Success()
			return models.User{}, err
		}
		s.breaker.Failure()
		return s.demoLogin(username, password, admin)
	}

	s.mu.Lock()
	s.user = &reply.User
	s.offline = false
	s.mu.Unlock()
	s.breaker.Success()

	// refresh point: post-login
	_ = s.Refresh(ctx)

	return reply.User, nil
}

func (s *Session) demoLogin(username, password string, admin bool) (models.User, error) {
	user, ok := verifyDemoCredentials(username, password, admin)
	if !ok {
		return models.User{}, errors.New("invalid credentials")
	}

	s.api.SetToken(demoToken)

	s.mu.Lock()
	s.user = &user
	s.offline = true
	if len(s.events) == 0 {
		s.events = DemoEvents()
	}
	s.mu.Unlock()

	return user, nil
}

// Logout clears the token and user but keeps the event cache.
func (s *Session) Logout() {
	s.api.ClearToken()
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// CreateEvent persists a new event and refreshes the cache. In demo mode
// the event is appended locally, mirroring the optimistic offline path.
func (s *Session) CreateEvent(ctx context.Context, input models.EventInput) error {
	if s.Offline() {
		s.appendLocal(input)
		return nil
	}

	if _, err := s.api.CreateEvent(ctx, input); err != nil {
		if isAPIError(err) {
			return err
		}
		s.breaker.Failure()
		s.appendLocal(input)
		return nil
	}

	// refresh point: post-mutation
	return s.Refresh(ctx)
}

func (s *Session) DeleteEvent(ctx context.Context, id string) error {
	if s.Offline() {
		s.removeLocal(id)
		return nil
	}

	if err := s.api.DeleteEvent(ctx, id); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

func (s *Session) UpdateEvent(ctx context.Context, id string, input models.EventInput) error {
	if s.Offline() {
		return errOffline
	}

	if _, err := s.api.UpdateEvent(ctx, id, input); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

func (s *Session) ResetEvents(ctx context.Context) error {
	if s.Offline() {
		s.mu.Lock()
		s.events = DemoEvents()
		s.mu.Unlock()
		return nil
	}

	if _, err := s.api.ResetEvents(ctx); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

// Purchase buys tickets and refreshes the cache so the remaining count is
// re-read from the server rather than decremented locally.
func (s *Session) Purchase(ctx context.Context, eventID string, quantity int) (models.PurchaseResult, error) {
	if s.Offline() {
		return models.PurchaseResult{}, errOffline
	}

	result, err := s.api.Purchase(ctx, eventID, quantity)
	if err != nil {
		return models.PurchaseResult{}, err
	}

	return result, s.Refresh(ctx)
}

func (s *Session) appendLocal(input models.EventInput) {
	event := models.Event{
		ID:               fmt.Sprintf("local-%d", time.Now().UnixNano()),
		Price:            0,
		AvailableTickets: 100,
	}
	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Position != nil {
		event.Position = input.Position
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.AvailableTickets != nil {
		event.AvailableTickets = *input.AvailableTickets
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func (s *Session) removeLocal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, event := range s.events {
		if event.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

var errOffline = errors.New("client: server unreachable, demo mode active")

func isAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
