package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"dsa_sheet/internal/domain/model"
)

// Client is a typed caller for the sheet API. Catalog and progress calls
// attach the bearer token; auth calls do not.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

type AuthResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", credentials{email, password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Topics(ctx context.Context, token string) ([]model.Topic, error) {
	var topics []model.Topic
	if err := c.do(ctx, http.MethodGet, "/api/topics", token, nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *Client) Problems(ctx context.Context, token string) ([]model.Problem, error) {
	var problems []model.Problem
	if err := c.do(ctx, http.MethodGet, "/api/problems", token, nil, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func (c *Client) Progress(ctx context.Context, token string) ([]model.Progress, error) {
	var progress []model.Progress
	if err := c.do(ctx, http.MethodGet, "/api/progress", token, nil, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (c *Client) UpdateProgress(ctx context.Context, token, problemID string, completed bool) (*model.Progress, error) {
	body := struct {
		ProblemID string `json:"problem_id"`
		Completed bool   `json:"completed"`
	}{problemID, completed}
	var progress model.Progress
	if err := c.do(ctx, http.MethodPost, "/api/progress", token, body, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, dest interface{}) error {
	var reqBody *bytes.Buffer = &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// decodeAPIError prefers the server's error message and falls back to a
// generic one when the body is not the expected {"error": ...} shape.
func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
