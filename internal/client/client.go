// Package client is the Go API client for the DevConnect backend. It drives
// the authstate reducer: every server interaction dispatches an event,
// applies the pure transition, and executes the returned storage effect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MohitKacha/Dev-connect-Social-media/internal/client/authstate"
	"github.com/MohitKacha/Dev-connect-Social-media/internal/models"
)

const authHeaderName = "x-auth-token"

// Client talks to the backend and tracks authentication state.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	state   authstate.State
}

// New builds a Client whose initial state mirrors the durable token store.
func New(baseURL string, store TokenStore) (*Client, error) {
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading stored token: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		state:   authstate.Initial(token),
	}, nil
}

// State returns the current auth snapshot.
func (c *Client) State() authstate.State {
	return c.state
}

// dispatch applies one event and executes its storage effect.
func (c *Client) dispatch(event authstate.Event) error {
	next, effect := authstate.Reduce(c.state, event)
	switch effect {
	case authstate.EffectPersistToken:
		if err := c.store.Save(next.Token); err != nil {
			return fmt.Errorf("persisting token: %w", err)
		}
	case authstate.EffectClearToken:
		if err := c.store.Clear(); err != nil {
			return fmt.Errorf("clearing token: %w", err)
		}
	}
	c.state = next
	return nil
}

// LoadUser fetches the current identity using the stored token. A missing or
// rejected token settles the state as unauthenticated; that is not an error.
func (c *Client) LoadUser(ctx context.Context) error {
	if c.state.Token == "" {
		return c.dispatch(authstate.AuthError{})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth", nil)
	if err != nil {
		return err
	}
	req.Header.Set(authHeaderName, c.state.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.dispatch(authstate.AuthError{})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.dispatch(authstate.AuthError{})
	}

	var body struct {
		User models.PublicUser `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return c.dispatch(authstate.AuthError{})
	}

	return c.dispatch(authstate.UserLoaded{User: body.User})
}

// Register creates an account and authenticates on success.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.obtainToken(ctx, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login authenticates with existing credentials.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.obtainToken(ctx, "/api/auth", map[string]string{
		"email":    email,
		"password": password,
	})
}

// AuthErrors are the field messages from the last rejected register/login.
type AuthErrors struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func (e *AuthErrors) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Msg)
	}
	if len(msgs) == 0 {
		return "authentication failed"
	}
	return strings.Join(msgs, "; ")
}

func (c *Client) obtainToken(ctx context.Context, path string, payload map[string]string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if dispatchErr := c.dispatch(authstate.RegisterFail{}); dispatchErr != nil {
			return dispatchErr
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &AuthErrors{}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		if dispatchErr := c.dispatch(authstate.RegisterFail{}); dispatchErr != nil {
			return dispatchErr
		}
		return apiErr
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if body.Token == "" {
		if dispatchErr := c.dispatch(authstate.RegisterFail{}); dispatchErr != nil {
			return dispatchErr
		}
		return fmt.Errorf("no token in response")
	}

	if err := c.dispatch(authstate.RegisterSuccess{Token: body.Token}); err != nil {
		return err
	}
	return c.LoadUser(ctx)
}
