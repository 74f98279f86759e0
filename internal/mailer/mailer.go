package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
)

// Client talks to the transactional-mail HTTP API. It is the only outbound
// email transport in the system; the dispatch engine sees it as a
// notifier.Mailer.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func New(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	FromName string `json:"from_name"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
}

func (c *Client) Send(m notifier.Mail) error {
	body, err := json.Marshal(sendRequest{
		FromName: m.FromName,
		To:       m.To,
		Subject:  m.Subject,
		HTML:     m.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}

	return nil
}
