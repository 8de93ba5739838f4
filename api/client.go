package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/kvv7ma/bento-order-system/config"
	"github.com/kvv7ma/bento-order-system/models"
)

// Client talks to the bento backend. It is stateless; the bearer token is
// passed per call because each chat has its own session.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &Error{
			Status: resp.StatusCode,
			Detail: errBody.Detail,
			Kind:   classify(resp.StatusCode, errBody.Detail),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := map[string]string{"username": username, "password": password}
	var tr TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &tr); err != nil {
		return nil, err
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("login: empty access token in response")
	}
	return &tr, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListMenus fetches the whole catalog in one request. A response without a
// menus field is malformed (an empty catalog comes back as an empty array).
func (c *Client) ListMenus(ctx context.Context, token string) ([]models.MenuItem, error) {
	path := "/customer/menus?" + url.Values{"per_page": {fmt.Sprint(models.CatalogFetchLimit)}}.Encode()
	var resp struct {
		Menus *[]models.MenuItem `json:"menus"`
		Total int                `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Menus == nil {
		return nil, fmt.Errorf("list menus: malformed response, missing menus field")
	}
	return *resp.Menus, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	path := "/customer/orders?" + url.Values{"per_page": {fmt.Sprint(models.CatalogFetchLimit)}}.Encode()
	var resp struct {
		Orders *[]models.Order `json:"orders"`
		Total  int             `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		return nil, fmt.Errorf("list orders: malformed response, missing orders field")
	}
	return *resp.Orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, in models.CreateOrderInput) (*models.Order, error) {
	var o models.Order
	if err := c.do(ctx, http.MethodPost, "/customer/orders", token, in, &o); err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, fmt.Errorf("create order: response has no order id")
	}
	return &o, nil
}

func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64) (*models.Order, error) {
	var o models.Order
	path := fmt.Sprintf("/customer/orders/%d/cancel", orderID)
	if err := c.do(ctx, http.MethodPut, path, token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
