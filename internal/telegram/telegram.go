package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const timeout = 10 * time.Second

// apiBaseURL is a variable so tests can point the client at an httptest server.
var apiBaseURL = "https://api.telegram.org/bot"

// ParseMode is the Bot API formatting mode used for every message.
const ParseMode = "Markdown"

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

// NewClient creates a new Telegram client whose SendMessage goes to chatID.
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken: botToken,
		chatID:   chatID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ChatID returns the destination of SendMessage.
func (c *Client) ChatID() string {
	return c.chatID
}

// SendMessage sends a text message to the configured chat
func (c *Client) SendMessage(ctx context.Context, text string) error {
	return c.SendMessageTo(ctx, c.chatID, text)
}

// SendMessageTo sends a text message to an arbitrary chat, used for command replies.
func (c *Client) SendMessageTo(ctx context.Context, chatID, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}

	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               ParseMode,
		"disable_web_page_preview": true,
	}

	return c.call(ctx, c.httpClient, "sendMessage", payload, nil)
}

// GetUpdates long-polls for updates starting at offset.
// timeoutSeconds is the server side wait; zero returns immediately.
func (c *Client) GetUpdates(ctx context.Context, offset int, timeoutSeconds int) ([]Update, error) {
	payload := map[string]interface{}{
		"allowed_updates": []string{"message"},
	}
	if offset > 0 {
		payload["offset"] = offset
	}
	if timeoutSeconds > 0 {
		payload["timeout"] = timeoutSeconds
	}

	// the HTTP timeout has to outlast Telegram's long poll
	clientTimeout := time.Duration(timeoutSeconds+10) * time.Second
	if clientTimeout < 15*time.Second {
		clientTimeout = 15 * time.Second
	}
	httpClient := &http.Client{Timeout: clientTimeout, Transport: c.httpClient.Transport}

	var updates []Update
	if err := c.call(ctx, httpClient, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// call posts a JSON payload to a Bot API method and decodes the "result" field into out.
func (c *Client) call(ctx context.Context, httpClient *http.Client, method string, payload map[string]interface{}, out interface{}) error {
	endpoint := fmt.Sprintf("%s%s/%s", apiBaseURL, url.PathEscape(c.botToken), method)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var result struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
		Parameters  *struct {
			RetryAfter int `json:"retry_after"`
		} `json:"parameters,omitempty"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("parsing response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		msg := result.Description
		if result.Parameters != nil && result.Parameters.RetryAfter > 0 {
			msg += " (retry after " + strconv.Itoa(result.Parameters.RetryAfter) + "s)"
		}
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, msg)
	}

	if out != nil && len(result.Result) > 0 {
		if err := json.Unmarshal(result.Result, out); err != nil {
			return fmt.Errorf("decoding %s result: %w", method, err)
		}
	}

	return nil
}
