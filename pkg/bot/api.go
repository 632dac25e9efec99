package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// apiClient is a minimal Telegram Bot API client: long-polled updates in,
// JSON method calls out.
type apiClient struct {
	token   string
	baseURL string
	client  *http.Client
}

func newAPIClient(token string) *apiClient {
	return &apiClient{
		token:   token,
		baseURL: defaultAPIBase,
		// Must sit above the getUpdates long-poll window.
		client: &http.Client{Timeout: 50 * time.Second},
	}
}

// update is one entry from getUpdates. Only the fields this bot routes on.
type update struct {
	UpdateID      int            `json:"update_id"`
	Message       *message       `json:"message,omitempty"`
	CallbackQuery *callbackQuery `json:"callback_query,omitempty"`
	InlineQuery   *inlineQuery   `json:"inline_query,omitempty"`
}

type message struct {
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	Chat      chat   `json:"chat"`
	From      *user  `json:"from,omitempty"`
}

type chat struct {
	ID int64 `json:"id"`
}

type callbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	From    *user    `json:"from,omitempty"`
	Message *message `json:"message,omitempty"`
}

type inlineQuery struct {
	ID    string `json:"id"`
	Query string `json:"query"`
	From  *user  `json:"from,omitempty"`
}

type user struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// getUpdates long-polls for new updates past offset.
func (c *apiClient) getUpdates(offset, timeoutSec int) ([]update, error) {
	body, err := c.call("getUpdates", map[string]interface{}{
		"offset":  offset,
		"timeout": timeoutSec,
	})
	if err != nil {
		return nil, err
	}

	var updates []update
	if err := json.Unmarshal(body, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

// sendMessage sends markdown text, optionally with an inline keyboard.
func (c *apiClient) sendMessage(chatID int64, text string, keyboard [][]map[string]string) error {
	payload := map[string]interface{}{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "Markdown",
	}
	if keyboard != nil {
		payload["reply_markup"] = map[string]interface{}{
			"inline_keyboard": keyboard,
		}
	}
	_, err := c.call("sendMessage", payload)
	return err
}

// answerCallbackQuery acknowledges a button press.
func (c *apiClient) answerCallbackQuery(callbackID string) error {
	_, err := c.call("answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackID,
	})
	return err
}

// inlineArticle is one result row of an inline query answer.
type inlineArticle struct {
	id, title, messageText string
}

// answerInlineQuery answers an inline query with zero or more articles.
func (c *apiClient) answerInlineQuery(queryID string, articles []inlineArticle, cacheTime int) error {
	results := make([]map[string]interface{}, 0, len(articles))
	for _, a := range articles {
		results = append(results, map[string]interface{}{
			"type":  "article",
			"id":    a.id,
			"title": a.title,
			"input_message_content": map[string]interface{}{
				"message_text": a.messageText,
			},
		})
	}

	_, err := c.call("answerInlineQuery", map[string]interface{}{
		"inline_query_id": queryID,
		"results":         results,
		"cache_time":      cacheTime,
	})
	return err
}

// call posts one Bot API method and returns the result payload.
func (c *apiClient) call(method string, payload map[string]interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	resp, err := c.client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}

	var result struct {
		OK          bool            `json:"ok"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !result.OK {
		return nil, fmt.Errorf("%s: telegram API error: %s", method, result.Description)
	}
	return result.Result, nil
}
