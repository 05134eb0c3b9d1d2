package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://trackapi.nutritionix.com"
	nutrientsPath  = "/v2/natural/nutrients"
	timezone       = "Asia/Bangkok"
)

var _ Analyzer = (*Client)(nil)

type ClientConfig struct {
	BaseURL string
	AppID   string
	AppKey  string
	Timeout time.Duration
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("x-app-id", cfg.AppID).
		SetHeader("x-app-key", cfg.AppKey).
		SetHeader("Content-Type", "application/json")

	return &Client{http: cli}
}

// Analyze queries the natural-language nutrients endpoint once; it never retries.
// Every failure is an *APIError. Nutritionix answers 404 when nothing in the
// query matched a food; that is reported as an empty result, not an error.
func (c *Client) Analyze(ctx context.Context, query string) ([]FoodItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(nutrientsRequest{Query: query, Timezone: timezone}).
		Post(nutrientsPath)
	if err != nil {
		return nil, transportError(err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, nil
	case resp.IsError():
		return nil, statusError(resp.StatusCode(), resp.Body())
	}

	var out nutrientsResponse
	if err := unmarshal(resp.Body(), &out); err != nil {
		return nil, decodeError(err)
	}
	return out.Foods, nil
}

func unmarshal(body []byte, v any) error {
	return json.NewDecoder(bytes.NewReader(body)).Decode(v)
}
