package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/oukeidos/caplet/internal/apperrors"
	"github.com/oukeidos/caplet/internal/httpclient"
)

// Session is the provider's response to a successful credential exchange.
type Session struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorEnvelope struct {
	Error errorDetails `json:"error"`
}

type errorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client talks to the identity provider's HTTP API.
type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/")}
}

// SignIn exchanges credentials for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.credentialCall(ctx, "/v1/auth/login", email, password)
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	return c.credentialCall(ctx, "/v1/auth/register", email, password)
}

func (c *Client) credentialCall(ctx context.Context, path, email, password string) (*Session, error) {
	body, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		return nil, apperrors.New(
			apperrors.KindTransient,
			"The sign-in service is unreachable. Please try again.",
			fmt.Errorf("request failed: %w", err),
		)
	}
	if resp.StatusCode != http.StatusOK {
		details := parseErrorDetails(respBody)
		return nil, classifyAuthCode(details.Code, details.Message)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, apperrors.New(
			apperrors.KindBadRequest,
			"The sign-in service returned an invalid response.",
			fmt.Errorf("failed to decode response: %w", err),
		)
	}
	return &session, nil
}

// SignOut revokes the session token on the provider side.
func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	respBody, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		return apperrors.Transient(fmt.Errorf("logout request failed: %w", err))
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		details := parseErrorDetails(respBody)
		return classifyAuthCode(details.Code, details.Message)
	}
	return nil
}

// CurrentUser validates a stored token and returns the identity it belongs to.
func (c *Client) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/session", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	respBody, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		return nil, apperrors.Transient(fmt.Errorf("session lookup failed: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		details := parseErrorDetails(respBody)
		return nil, classifyAuthCode(details.Code, details.Message)
	}

	var id Identity
	if err := json.Unmarshal(respBody, &id); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	return &id, nil
}

func parseErrorDetails(body []byte) errorDetails {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errorDetails{}
	}
	return envelope.Error
}
