package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/1broseidon/floatwm/internal/manager"
	"github.com/1broseidon/floatwm/internal/strut"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Client queries a running window manager.
type Client struct {
	http    *http.Client
	baseURL string
}

const clientTimeout = 5 * time.Second

// NewUnixClient talks to the API socket at socketPath.
func NewUnixClient(socketPath string) *Client {
	dialer := &net.Dialer{Timeout: clientTimeout}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, "unix", socketPath)
		},
	}
	return &Client{
		http:    &http.Client{Transport: transport, Timeout: clientTimeout},
		baseURL: "http://floatwm",
	}
}

// NewTCPClient talks to an API listening on addr (host:port).
func NewTCPClient(addr string) *Client {
	return &Client{
		http:    &http.Client{Timeout: clientTimeout},
		baseURL: "http://" + addr,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach window manager: %w (is it running?)", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var e errorBody
		if json.Unmarshal(body, &e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, e.Error)
		}
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Status returns the manager summary.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var body struct {
		Item Status `json:"item"`
	}
	err := c.do(ctx, http.MethodGet, "/status/", &body)
	return body.Item, err
}

// Clients returns the managed clients, bottom of the stack first.
func (c *Client) Clients(ctx context.Context) ([]wm.Client, error) {
	var body struct {
		Items []wm.Client `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/clients/", &body)
	return body.Items, err
}

// Screens returns the screen layout.
func (c *Client) Screens(ctx context.Context) ([]wm.Screen, error) {
	var body struct {
		Items []wm.Screen `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/screens/", &body)
	return body.Items, err
}

// Struts returns every registered strut.
func (c *Client) Struts(ctx context.Context) ([]strut.Strut, error) {
	var body struct {
		Items []strut.Strut `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/struts/", &body)
	return body.Items, err
}

// FreeAreas returns the free area of every screen.
func (c *Client) FreeAreas(ctx context.Context) ([]manager.FreeArea, error) {
	var body struct {
		Items []manager.FreeArea `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, "/freearea/", &body)
	return body.Items, err
}

// Reload asks the manager to re-read its configuration.
func (c *Client) Reload(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/reload", nil)
}
