package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const identityBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Session is the transient result of a successful sign-in. It is not
// persisted by this application.
type Session struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
}

// SignInProvider verifies email+password credentials against the external
// identity provider.
type SignInProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
}

// IdentityClient signs users in through the Firebase Identity Toolkit REST
// API. Provider error messages are surfaced verbatim.
type IdentityClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewIdentityClient creates a client using the Firebase web API key.
func NewIdentityClient(apiKey string) *IdentityClient {
	return &IdentityClient{
		baseURL: identityBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewIdentityClientWithBaseURL is used by tests to point at a local server.
func NewIdentityClientWithBaseURL(baseURL, apiKey string) *IdentityClient {
	c := NewIdentityClient(apiKey)
	c.baseURL = baseURL
	return c
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type identityError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword exchanges credentials for a session.
func (c *IdentityClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("marshal sign-in request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ie identityError
		if err := json.NewDecoder(resp.Body).Decode(&ie); err == nil && ie.Error.Message != "" {
			return nil, errors.New(ie.Error.Message)
		}
		return nil, fmt.Errorf("sign in: status %d", resp.StatusCode)
	}

	var parsed signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	return &Session{
		UID:          parsed.LocalID,
		Email:        parsed.Email,
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
	}, nil
}
