// Package assetstore is the thin transport to the remote asset-tracking
// service. Every call sends the X-Api-Key header; the service answers reads
// with 200 and accepts writes with 202 (processing is asynchronous).
package assetstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/medregister-pl/asset-register/pkg/register/models"
)

// ErrUnavailable marks a read that could not be completed: transport error
// or a non-200 response. Callers turn it into a retry-later notice.
var ErrUnavailable = errors.New("asset service unavailable")

// RejectedError is a create/delete the service did not accept (status != 202).
// Body carries the raw upstream response for diagnostics.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("asset service rejected request: status %d body=%s", e.Status, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New builds a client with an explicit request timeout.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) endpoint(parts ...string) string {
	return c.baseURL + "/" + path.Join(parts...)
}

// ListAssets fetches the full asset set.
func (c *Client) ListAssets(ctx context.Context) ([]models.Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("assets"), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrUnavailable, resp.Status)
	}

	var assets []models.Asset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return assets, nil
}

// CreateAsset submits one asset record as a form-encoded POST.
func (c *Client) CreateAsset(ctx context.Context, payload models.AssetPayload) error {
	data, err := payload.EncodeData()
	if err != nil {
		return fmt.Errorf("encode data rows: %w", err)
	}

	form := url.Values{}
	form.Set("ID", payload.ID)
	form.Set("UserId", payload.UserID)
	form.Set("FirstName", payload.FirstName)
	form.Set("LastName", payload.LastName)
	form.Set("Hospital", payload.Hospital)
	form.Set("Data", data)
	form.Set("ParentId", payload.ParentID)
	form.Set("Version", strconv.Itoa(payload.Version))
	form.Set("Description", payload.Description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("assets"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.expectAccepted(req)
}

// DeleteAsset asks the service to remove (or soft-delete) one asset.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("assets", id), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	return c.expectAccepted(req)
}

func (c *Client) expectAccepted(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &RejectedError{Status: resp.StatusCode, Body: string(body)}
}
