// Package client is a small Go client for the apartment fee API, used by
// the CLI and by integration tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/dto"
)

// ErrNotPaid is returned by PaymentStatus while the assignment is unpaid or unknown.
var ErrNotPaid = errors.New("payment not received")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the API on behalf of one user.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

type Option func(*Client)

// WithHTTPClient replaces the default client with its 15 second timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAccessToken starts the client with an existing access token.
func WithAccessToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates and keeps both tokens for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	req := dto.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.accessToken, c.refreshToken = resp.AccessToken, resp.RefreshToken
	c.mu.Unlock()
	return &resp, nil
}

// Refresh swaps the stored refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	refresh := c.refreshToken
	c.mu.RUnlock()
	if refresh == "" {
		return errors.New("no refresh token, log in first")
	}

	var resp dto.RefreshTokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", dto.RefreshTokenRequest{RefreshToken: refresh}, &resp); err != nil {
		return err
	}
	c.mu.Lock()
	c.accessToken = resp.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) Household(ctx context.Context) (*dto.HouseholdResponse, error) {
	var resp dto.HouseholdResponse
	if err := c.do(ctx, http.MethodGet, "/household", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PayFee settles the caller's assignment of feeID.
func (c *Client) PayFee(ctx context.Context, feeID int64) (*dto.PayFeeResponse, error) {
	q := url.Values{"fee_id": {strconv.FormatInt(feeID, 10)}}
	var resp dto.PayFeeResponse
	if err := c.do(ctx, http.MethodPost, "/household/pay?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PaymentStatus reports a paid assignment, or ErrNotPaid.
func (c *Client) PaymentStatus(ctx context.Context, assignmentID int64) (*dto.PaymentStatusResponse, error) {
	var resp dto.PaymentStatusResponse
	err := c.do(ctx, http.MethodGet, "/webhook/payment/"+strconv.FormatInt(assignmentID, 10), nil, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, ErrNotPaid
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	c.mu.RUnlock()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(res.StatusCode)
		}
		return &APIError{StatusCode: res.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
