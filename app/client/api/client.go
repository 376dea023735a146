package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	endpoint string
	hc       *http.Client
}

type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Mission struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LaunchDate  time.Time `json:"launchDate"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"imageUrl"`
	Crew        []string  `json:"crew"`
}

type Project struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        []string  `json:"tags"`
}

type listResponse[T any] struct {
	Limit   int   `json:"limit"`
	PageMax int64 `json:"pageMax"`
	List    []T   `json:"list"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		hc:       http.DefaultClient,
	}
}

func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &res); err != nil {
		return "", err
	}

	return res.Token, nil
}

func (c *Client) Signup(ctx context.Context, name string, email string, password string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, name string, email string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", token, map[string]string{
		"name":  name,
		"email": email,
	}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, currentPassword string, newPassword string) error {
	return c.do(ctx, http.MethodPost, "/auth/change-password", token, map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}, nil)
}

func (c *Client) Missions(ctx context.Context) ([]Mission, error) {
	var res listResponse[Mission]
	if err := c.do(ctx, http.MethodGet, "/missions", "", nil, &res); err != nil {
		return nil, err
	}

	return res.List, nil
}

func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var res listResponse[Project]
	if err := c.do(ctx, http.MethodGet, "/projects", "", nil, &res); err != nil {
		return nil, err
	}

	return res.List, nil
}

// do sends one request and decodes the response into out (when non-nil). A
// non-2xx response surfaces the server's message as the error.
func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	reqURL, err := url.JoinPath(c.endpoint, path)
	if err != nil {
		return fmt.Errorf("join request url: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("prepare request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var em errorMessage
		if err := json.Unmarshal(resBody, &em); err == nil && em.Message != "" {
			return fmt.Errorf("%s", em.Message)
		}
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}
