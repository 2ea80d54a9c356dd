package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lexv0lk/coin-shop/internal/store/domain"
)

const defaultRequestTimeout = 10 * time.Second

type sendPrivateRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

type sendPrivateResponse struct {
	MessageRef string `json:"message_ref"`
}

type cardRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	Stock         int64  `json:"stock"`
	Image         string `json:"image,omitempty"`
	Footer        string `json:"footer,omitempty"`
	ActionEnabled bool   `json:"action_enabled"`
}

// Client talks to the chat-bot bridge that owns the platform connection.
// It implements domain.NotificationTransport and domain.CardPublisher.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) SendPrivate(ctx context.Context, userID int64, text string) (domain.MessageRef, error) {
	resp, err := c.do(ctx, http.MethodPost, "/messages", sendPrivateRequest{UserID: userID, Text: text})
	if err != nil {
		return "", &domain.UndeliverableError{UserID: userID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &domain.UndeliverableError{UserID: userID, Err: statusError(resp)}
	}

	var body sendPrivateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &domain.UndeliverableError{UserID: userID, Err: fmt.Errorf("failed to decode bridge response: %w", err)}
	}

	return domain.MessageRef(body.MessageRef), nil
}

func (c *Client) Retract(ctx context.Context, ref domain.MessageRef) error {
	resp, err := c.do(ctx, http.MethodDelete, "/messages/"+url.PathEscape(string(ref)), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return &domain.MessageGoneError{Ref: ref}
	default:
		return statusError(resp)
	}
}

func (c *Client) PublishCard(ctx context.Context, ref domain.CardRef, card domain.Card) error {
	resp, err := c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(string(ref)), cardRequest{
		Title:         card.Title,
		Description:   card.Description,
		Price:         card.Price,
		Stock:         card.Stock,
		Image:         card.Image,
		Footer:        card.Footer,
		ActionEnabled: card.ActionEnabled,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound, http.StatusGone:
		return &domain.TargetGoneError{Ref: ref}
	default:
		return statusError(resp)
	}
}

func (c *Client) do(ctx context.Context, method string, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode bridge request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build bridge request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge request %s %s failed: %w", method, path, err)
	}

	return resp, nil
}

func statusError(resp *http.Response) error {
	message, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("bridge responded %d: %s", resp.StatusCode, strings.TrimSpace(string(message)))
}
