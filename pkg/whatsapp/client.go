package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentic-sales-be/internal/pkg/logger"
)

const graphAPIBase = "https://graph.facebook.com/v22.0"

// ISender is the outbound surface the agent needs from WhatsApp.
type ISender interface {
	SendText(ctx context.Context, to, text string) error
	MarkAsRead(ctx context.Context, messageId string) error
}

type Client struct {
	token         string
	phoneNumberId string
	baseURL       string
	client        *http.Client
	logger        logger.ILogger
}

func NewClient(token, phoneNumberId string, log logger.ILogger) *Client {
	return &Client{
		token:         token,
		phoneNumberId: phoneNumberId,
		baseURL:       fmt.Sprintf("%s/%s", graphAPIBase, phoneNumberId),
		client:        &http.Client{Timeout: 30 * time.Second},
		logger:        log,
	}
}

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type readPayload struct {
	MessagingProduct string `json:"messaging_product"`
	Status           string `json:"status"`
	MessageId        string `json:"message_id"`
}

// SendText delivers a single text message via the Graph API.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               normalizeNumber(to),
		Type:             "text",
		Text:             textBody{Body: text},
	}

	respBody, status, err := c.post(ctx, "/messages", payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("whatsapp send failed (status %d): %s", status, string(respBody))
	}
	return nil
}

// MarkAsRead flags an inbound message as read. Failures are logged but not
// propagated, delivery of the reply matters more than the receipt.
func (c *Client) MarkAsRead(ctx context.Context, messageId string) error {
	payload := readPayload{
		MessagingProduct: "whatsapp",
		Status:           "read",
		MessageId:        messageId,
	}

	respBody, status, err := c.post(ctx, "/messages", payload)
	if err != nil {
		c.logger.Warn("WhatsappClient", "Failed to mark message as read", map[string]interface{}{
			"message_id": messageId,
			"error":      err.Error(),
		})
		return nil
	}
	if status >= 400 {
		c.logger.Warn("WhatsappClient", "Mark as read rejected", map[string]interface{}{
			"message_id": messageId,
			"status":     status,
			"body":       string(respBody),
		})
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return respBody, resp.StatusCode, nil
}

func normalizeNumber(number string) string {
	return strings.TrimPrefix(strings.TrimSpace(number), "+")
}
