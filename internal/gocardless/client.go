// Package gocardless is a minimal client for the GoCardless Bank Account
// Data API v2. It covers the token exchange, requisition listing and
// per-account transaction fetch the sync pipeline needs.
//
// Docs: https://developer.gocardless.com/bank-account-data/overview
package gocardless

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Bank Account Data endpoint.
const DefaultBaseURL = "https://bankaccountdata.gocardless.com/api/v2"

const (
	defaultTokenTimeout = 15 * time.Second
	defaultCallTimeout  = 20 * time.Second
)

// Client talks to the aggregator with a fixed secret pair. Every
// authenticated call exchanges the secrets for a fresh short-lived bearer
// token first, so an expired token can never be reused.
type Client struct {
	baseURL   string
	secretID  string
	secretKey string

	tokenHTTP *http.Client
	callHTTP  *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used against sandboxes and in
// tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithTimeout bounds every remote call, token exchange included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.tokenHTTP = &http.Client{Timeout: d}
		c.callHTTP = &http.Client{Timeout: d}
	}
}

// NewClient builds a client for the given secret pair.
func NewClient(secretID, secretKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		secretID:  secretID,
		secretKey: secretKey,
		tokenHTTP: &http.Client{Timeout: defaultTokenTimeout},
		callHTTP:  &http.Client{Timeout: defaultCallTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token exchanges the secret pair for a short-lived access token.
func (c *Client) Token(ctx context.Context) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"secret_id":  c.secretID,
		"secret_key": c.secretKey,
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token/new/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.tokenHTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if !is2xx(resp.StatusCode) {
		return "", &AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var token struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &token); err != nil || token.Access == "" {
		return "", &AuthError{Body: "malformed token response"}
	}
	return token.Access, nil
}

// ListRequisitions returns all linked bank connections.
func (c *Client) ListRequisitions(ctx context.Context) ([]Requisition, error) {
	var list requisitionList
	if err := c.get(ctx, "/requisitions/", nil, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// GetRequisition fetches one requisition by id.
func (c *Client) GetRequisition(ctx context.Context, id string) (Requisition, error) {
	var req Requisition
	err := c.get(ctx, "/requisitions/"+url.PathEscape(id)+"/", nil, &req)
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Status == http.StatusNotFound {
		return Requisition{}, &NotFoundError{Resource: "requisition", ID: id}
	}
	return req, err
}

// AccountTransactions fetches the transaction listing for one linked
// account.
func (c *Client) AccountTransactions(ctx context.Context, accountID string, opts TransactionOptions) (TransactionPage, error) {
	params := url.Values{}
	if opts.Include != "" {
		params.Set("include", opts.Include)
	}
	if opts.DateFrom != "" {
		params.Set("date_from", opts.DateFrom)
	}
	if opts.DateTo != "" {
		params.Set("date_to", opts.DateTo)
	}

	var page TransactionPage
	err := c.get(ctx, "/accounts/"+url.PathEscape(accountID)+"/transactions/", params, &page)
	return page, err
}

// get performs an authenticated GET, re-authenticating first.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	token, err := c.Token(ctx)
	if err != nil {
		return err
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.callHTTP.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if !is2xx(resp.StatusCode) {
		return &RemoteError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
