// Package docstore is the client for the durable per-identity record
// store. The overlay only reads and merges the language field; merge
// semantics are create-or-update and never clobber unrelated fields,
// which is why updates are sent as partial documents.
package docstore

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

// Record is the subset of the per-identity document this client touches.
// Zero-valued fields are omitted from merges.
type Record struct {
	Language string `json:"language,omitempty"`
}

// TokenSource supplies the bearer token for store calls.
type TokenSource func() string

type Client struct {
	baseURL string
	token   TokenSource
}

func NewClient(baseURL string, token TokenSource) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

// Get fetches the record for identityID. A missing record returns
// (nil, nil): absence is not an error.
func (c *Client) Get(ctx context.Context, identityID string) (*Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL(identityID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	body, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		return nil, apperrors.Transient(fmt.Errorf("profile fetch failed: %w", err))
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, apperrors.New(
			apperrors.KindPersistence,
			"Your profile could not be loaded.",
			fmt.Errorf("profile fetch status=%s", resp.Status),
		)
	}

	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &record, nil
}

// Merge applies the set fields of record to the identity's document,
// creating it if absent.
func (c *Client) Merge(ctx context.Context, identityID string, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.profileURL(identityID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	_, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		return apperrors.New(
			apperrors.KindPersistence,
			"Your preference could not be saved.",
			fmt.Errorf("profile merge failed: %w", err),
		)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apperrors.New(
			apperrors.KindPersistence,
			"Your preference could not be saved.",
			fmt.Errorf("profile merge status=%s", resp.Status),
		)
	}
	return nil
}

func (c *Client) profileURL(identityID string) string {
	return fmt.Sprintf("%s/v1/users/%s/profile", c.baseURL, identityID)
}

func (c *Client) authorize(req *http.Request) {
	if c.token == nil {
		return
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
