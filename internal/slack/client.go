package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when none of the searched channels contain a
// matching "New Order" message.
var ErrNotFound = errors.New("slack: order message not found")

const historyLimit = 100

// MessageRef addresses one message inside a channel.
type MessageRef struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

type Message struct {
	TS   string `json:"ts"`
	Text string `json:"text"`
}

// Client talks to the Slack Web API with a bot token.
type Client struct {
	token    string
	channels []string
	base     string
	hc       *http.Client
}

func New(token string, channels []string, timeout time.Duration) *Client {
	return &Client{
		token:    token,
		channels: channels,
		base:     "https://slack.com/api",
		hc:       &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at a different API root. Tests use it.
func (c *Client) WithBaseURL(base string) *Client {
	c.base = base
	return c
}

// Only messages like "ST.order #1234" count as the order's announcement.
var orderMsgRe = regexp.MustCompile(`(?i)\bst\.order\s+#?(\d+)\b`)

func isOrderMessage(text, number string) bool {
	m := orderMsgRe.FindStringSubmatch(text)
	return m != nil && m[1] == number
}

// FindOrderMessage scans the configured channels' recent history, oldest
// first, for the announcement message of the given order number.
func (c *Client) FindOrderMessage(ctx context.Context, number string) (MessageRef, error) {
	for _, ch := range c.channels {
		msgs, err := c.history(ctx, ch)
		if err != nil {
			log.Warn().Err(err).Str("channel", ch).Msg("slack history")
			continue
		}
		for i := len(msgs) - 1; i >= 0; i-- {
			if isOrderMessage(msgs[i].Text, number) {
				return MessageRef{Channel: ch, TS: msgs[i].TS}, nil
			}
		}
	}
	return MessageRef{}, ErrNotFound
}

func (c *Client) history(ctx context.Context, channel string) ([]Message, error) {
	q := url.Values{"channel": {channel}, "limit": {strconv.Itoa(historyLimit)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/conversations.history?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body struct {
		OK       bool      `json:"ok"`
		Error    string    `json:"error"`
		Messages []Message `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if !body.OK {
		return nil, fmt.Errorf("conversations.history: %s", body.Error)
	}
	return body.Messages, nil
}

// AddReaction attaches an emoji (name without colons) to a message.
// Reacting twice with the same emoji is not an error.
func (c *Client) AddReaction(ctx context.Context, ref MessageRef, emoji string) error {
	payload, _ := json.Marshal(map[string]string{
		"channel":   ref.Channel,
		"timestamp": ref.TS,
		"name":      emoji,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/reactions.add", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return err
	}
	if !body.OK && body.Error != "already_reacted" {
		return fmt.Errorf("reactions.add: %s", body.Error)
	}
	return nil
}
