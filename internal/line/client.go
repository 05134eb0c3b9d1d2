package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultAPIBaseURL = "https://api.line.me"
	replyPath         = "/v2/bot/message/reply"

	// MaxTextLength is the per-message character limit of a text message.
	MaxTextLength = 5000
)

var ErrEmptyReplyToken = errors.New("reply token is empty")

var _ Replier = (*Client)(nil)

type Client struct {
	http *resty.Client
}

func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json")

	return &Client{http: cli}
}

// Reply sends text as a single text message bound to replyToken.
// A reply token can be used once; LINE rejects a second use with 400.
func (c *Client) Reply(ctx context.Context, replyToken, text string) error {
	if replyToken == "" {
		return ErrEmptyReplyToken
	}

	msg := ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []TextMessage{{Type: "text", Text: truncate(text, MaxTextLength)}},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(msg).
		Post(replyPath)
	if err != nil {
		return fmt.Errorf("sending reply: %w", err)
	}

	if resp.IsError() {
		var e errorResponse
		if json.Unmarshal(resp.Body(), &e) == nil && e.Message != "" {
			return fmt.Errorf("line API status %d: %s", resp.StatusCode(), e.Message)
		}
		return fmt.Errorf("line API status %d: %s", resp.StatusCode(), resp.Body())
	}
	return nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
