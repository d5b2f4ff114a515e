// Package geoip resolves the visitor's country from their IP address.
// It is the last, best-effort step of language resolution: one shot, a
// short timeout, no retry, and every failure degrades to "no result".
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oukeidos/caplet/internal/httpclient"
	"github.com/oukeidos/caplet/internal/logger"
)

const lookupTimeout = 3 * time.Second

type Client struct {
	url string
}

func NewClient(url string) *Client {
	return &Client{url: url}
}

type lookupResponse struct {
	Country string `json:"country"`
}

// Country returns the visitor's ISO country code. ok is false on any
// failure or timeout; failures are logged, never surfaced.
func (c *Client) Country(ctx context.Context) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		logger.Debug("Geolocation request could not be built", "error", err)
		return "", false
	}

	body, resp, err := httpclient.DoAndRead(httpclient.GetDefaultClient(), req)
	if err != nil {
		logger.Debug("Geolocation lookup failed", "error", err)
		return "", false
	}
	if resp.StatusCode != http.StatusOK {
		logger.Debug("Geolocation lookup rejected", "status", resp.Status)
		return "", false
	}

	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		logger.Debug("Geolocation response was not valid JSON", "error", err)
		return "", false
	}
	country := strings.ToUpper(strings.TrimSpace(parsed.Country))
	if country == "" {
		return "", false
	}
	if len(country) != 2 {
		logger.Debug("Geolocation returned an unexpected country code", "country", fmt.Sprintf("%.8s", country))
		return "", false
	}
	return country, true
}
