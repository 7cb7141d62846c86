// Package mailer sends transactional email through the Resend HTTP API.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the Resend API endpoint.
const DefaultBaseURL = "https://api.resend.com"

// Message is one outgoing email. At least one of HTML and Text must be set.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a Message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Resend implements Sender.
type Resend struct {
	http *resty.Client
}

var _ Sender = (*Resend)(nil)

// NewResend builds a client. An empty baseURL means DefaultBaseURL.
func NewResend(baseURL, apiKey string) *Resend {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Resend{http: client}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type sendResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// Error is a non-2xx reply from Resend.
type Error struct {
	StatusCode int
	Name       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("resend: HTTP %d: %s: %s", e.StatusCode, e.Name, e.Message)
}

// Send posts msg to /emails.
func (r *Resend) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("mailer.Resend.Send: no recipients")
	}
	if msg.HTML == "" && msg.Text == "" {
		return "", errors.New("mailer.Resend.Send: empty body")
	}

	var (
		result  sendResponse
		failure errorResponse
	)
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    msg.From,
			To:      msg.To,
			ReplyTo: msg.ReplyTo,
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetResult(&result).
		SetError(&failure).
		Post("/emails")
	if err != nil {
		return "", fmt.Errorf("mailer.Resend.Send: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("mailer.Resend.Send: %w", &Error{
			StatusCode: resp.StatusCode(),
			Name:       failure.Name,
			Message:    failure.Message,
		})
	}
	return result.ID, nil
}
