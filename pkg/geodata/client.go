package geodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
)

const requestBodyReadLimit int64 = 1024

// Client fetches the Thai administrative-area dataset used for address entry.
type Client struct {
	httpClient  *http.Client
	provinceURL string
	districtURL string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds a dataset client for the given source URLs.
func NewClient(provinceURL, districtURL string, opts ...Option) (*Client, error) {
	provinceURL = strings.TrimSpace(provinceURL)
	districtURL = strings.TrimSpace(districtURL)
	if provinceURL == "" || districtURL == "" {
		return nil, fmt.Errorf("province and district dataset URLs are required")
	}

	client := &Client{
		provinceURL: provinceURL,
		districtURL: districtURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Province is a first-level administrative area.
type Province struct {
	ID     int    `json:"id"`
	NameTH string `json:"name_th"`
	NameEN string `json:"name_en"`
}

// District is a second-level administrative area (amphoe).
type District struct {
	ID         int    `json:"id"`
	ProvinceID int    `json:"province_id"`
	NameTH     string `json:"name_th"`
	NameEN     string `json:"name_en"`
}

// Provinces downloads the full province dataset.
func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geodata client not configured")
	}
	var provinces []Province
	if err := c.fetch(ctx, c.provinceURL, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

// Districts downloads the full district dataset.
func (c *Client) Districts(ctx context.Context) ([]District, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geodata client not configured")
	}
	var districts []District
	if err := c.fetch(ctx, c.districtURL, &districts); err != nil {
		return nil, err
	}
	return districts, nil
}

func (c *Client) fetch(ctx context.Context, url string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build dataset request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute dataset request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "dataset request failed")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode dataset response")
	}
	return nil
}
