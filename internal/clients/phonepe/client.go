// Package phonepe implements the PhonePe standard-checkout v2 flow:
// an OAuth client-credentials token (cached until shortly before
// expiry) and the hosted pay-page create call.
package phonepe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

const (
	defaultBaseURL    = "https://api.phonepe.com/apis"
	tokenPath         = "/identity-manager/v1/oauth/token"
	payPath           = "/pg/checkout/v2/pay"
	orderStatusPath   = "/pg/checkout/v2/order"
	maxErrorBodyBytes = 1024

	// Refresh the cached token a minute before PhonePe expires it.
	tokenExpirySlack = time.Minute
)

type Config struct {
	BaseURL       string
	ClientID      string
	ClientSecret  string
	ClientVersion string
}

func ResolveConfigFromEnv() Config {
	return Config{
		BaseURL:       strings.TrimSpace(os.Getenv("PHONEPE_BASE_URL")),
		ClientID:      strings.TrimSpace(os.Getenv("PHONEPE_CLIENT_ID")),
		ClientSecret:  strings.TrimSpace(os.Getenv("PHONEPE_CLIENT_SECRET")),
		ClientVersion: strings.TrimSpace(os.Getenv("PHONEPE_CLIENT_VERSION")),
	}
}

type PayPageRequest struct {
	MerchantOrderID string
	AmountPaise     int64
	RedirectURL     string
}

type PayPageResult struct {
	OrderID     string
	State       string
	RedirectURL string
}

type OrderStatus struct {
	OrderID string
	State   string
}

type Client struct {
	log     *logger.Logger
	cfg     Config
	baseURL string
	http    *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(log *logger.Logger, cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	if cfg.ClientVersion == "" {
		cfg.ClientVersion = "1"
	}
	return &Client{
		log:     log.With("client", "PhonePeClient"),
		cfg:     cfg,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) checkCredentials() error {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return fmt.Errorf("phonepe credentials not configured")
	}
	return nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	TokenType   string `json:"token_type"`
}

// token returns a valid access token, reusing the cached one until it
// is about to expire.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpirySlack)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("client_version", c.cfg.ClientVersion)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("phonepe token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("phonepe token: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("phonepe token: empty access_token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Unix(tok.ExpiresAt, 0)
	return c.accessToken, nil
}

func (c *Client) CreatePayPage(ctx context.Context, in PayPageRequest) (PayPageResult, error) {
	if err := c.checkCredentials(); err != nil {
		return PayPageResult{}, err
	}
	if in.MerchantOrderID == "" || in.AmountPaise <= 0 {
		return PayPageResult{}, fmt.Errorf("phonepe pay page: order id and positive amount required")
	}

	body := map[string]any{
		"merchantOrderId": in.MerchantOrderID,
		"amount":          in.AmountPaise,
		"paymentFlow": map[string]any{
			"type": "PG_CHECKOUT",
			"merchantUrls": map[string]any{
				"redirectUrl": in.RedirectURL,
			},
		},
	}

	var out struct {
		OrderID     string `json:"orderId"`
		State       string `json:"state"`
		RedirectURL string `json:"redirectUrl"`
	}
	if err := c.doJSON(ctx, http.MethodPost, payPath, body, &out); err != nil {
		return PayPageResult{}, fmt.Errorf("phonepe create pay page: %w", err)
	}
	return PayPageResult{OrderID: out.OrderID, State: out.State, RedirectURL: out.RedirectURL}, nil
}

func (c *Client) GetOrderStatus(ctx context.Context, merchantOrderID string) (OrderStatus, error) {
	if err := c.checkCredentials(); err != nil {
		return OrderStatus{}, err
	}
	var out struct {
		OrderID string `json:"orderId"`
		State   string `json:"state"`
	}
	path := orderStatusPath + "/" + url.PathEscape(merchantOrderID) + "/status"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return OrderStatus{}, fmt.Errorf("phonepe order status %q: %w", merchantOrderID, err)
	}
	return OrderStatus{OrderID: out.OrderID, State: out.State}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	tok, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "O-Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%s %s: status=%d body=%s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
