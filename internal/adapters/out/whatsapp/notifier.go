// Package whatsapp sends outbound messages through the WhatsApp Cloud API.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"
)

const (
	defaultBaseURL = "https://graph.facebook.com/v19.0"
	requestTimeout = 10 * time.Second

	catalogHeaderText = "Our Delicious Menu"
	catalogBodyText   = "Tap below to see our menu and add items to your cart. 😋"
	catalogFooterText = "Powered by WhatsApp"
	catalogSection    = "Menu"
)

// Config holds the Cloud API credentials.
type Config struct {
	// BaseURL overrides the Graph API endpoint, used by tests.
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	CatalogID     string
}

func (c Config) validate() error {
	if c.PhoneNumberID == "" {
		return errs.NewValueIsRequiredError("phoneNumberID")
	}
	if c.AccessToken == "" {
		return errs.NewValueIsRequiredError("accessToken")
	}
	return nil
}

// Notifier implements ports.Notifier against the Graph API messages endpoint.
type Notifier struct {
	config Config
	client *http.Client
	logger *slog.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(config Config, logger *slog.Logger) (*Notifier, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}

	return &Notifier{
		config: config,
		client: &http.Client{Timeout: requestTimeout},
		logger: logger.With("component", "whatsapp"),
	}, nil
}

type textPayload struct {
	Body string `json:"body"`
}

type interactivePayload struct {
	Type   string                 `json:"type"`
	Header *headerPayload         `json:"header,omitempty"`
	Body   interactiveBodyPayload `json:"body"`
	Footer *footerPayload         `json:"footer,omitempty"`
	Action json.RawMessage        `json:"action"`
}

// interactiveBodyPayload is distinct from textPayload: the Cloud API keys an
// interactive body by "text", a plain message by "body".
type interactiveBodyPayload struct {
	Text string `json:"text"`
}

type headerPayload struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type footerPayload struct {
	Text string `json:"text"`
}

type buttonPayload struct {
	Type  string             `json:"type"`
	Reply buttonReplyPayload `json:"reply"`
}

type buttonReplyPayload struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type messagePayload struct {
	MessagingProduct string              `json:"messaging_product"`
	To               string              `json:"to"`
	Type             string              `json:"type"`
	Text             *textPayload        `json:"text,omitempty"`
	Interactive      *interactivePayload `json:"interactive,omitempty"`
}

// SendText sends a plain text message.
func (n *Notifier) SendText(ctx context.Context, to kernel.Phone, body string) error {
	return n.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to.String(),
		Type:             "text",
		Text:             &textPayload{Body: body},
	})
}

// SendChoice sends an interactive button message. The Cloud API allows at
// most three buttons per message.
func (n *Notifier) SendChoice(ctx context.Context, to kernel.Phone, body string, options []chat.Option) error {
	buttons := make([]buttonPayload, 0, len(options))
	for _, option := range options {
		buttons = append(buttons, buttonPayload{
			Type:  "reply",
			Reply: buttonReplyPayload{ID: option.ID, Title: option.Title},
		})
	}

	action, err := json.Marshal(struct {
		Buttons []buttonPayload `json:"buttons"`
	}{Buttons: buttons})
	if err != nil {
		return err
	}

	return n.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to.String(),
		Type:             "interactive",
		Interactive: &interactivePayload{
			Type:   "button",
			Body:   interactiveBodyPayload{Text: body},
			Action: action,
		},
	})
}

// SendCatalogPrompt sends the product list message that opens the catalog.
func (n *Notifier) SendCatalogPrompt(ctx context.Context, to kernel.Phone) error {
	action, err := json.Marshal(struct {
		CatalogID string `json:"catalog_id"`
		Sections  []struct {
			Title string `json:"title"`
		} `json:"sections"`
	}{
		CatalogID: n.config.CatalogID,
		Sections: []struct {
			Title string `json:"title"`
		}{{Title: catalogSection}},
	})
	if err != nil {
		return err
	}

	return n.post(ctx, messagePayload{
		MessagingProduct: "whatsapp",
		To:               to.String(),
		Type:             "interactive",
		Interactive: &interactivePayload{
			Type:   "product_list",
			Header: &headerPayload{Type: "text", Text: catalogHeaderText},
			Body:   interactiveBodyPayload{Text: catalogBodyText},
			Footer: &footerPayload{Text: catalogFooterText},
			Action: action,
		},
	})
}

func (n *Notifier) post(ctx context.Context, payload messagePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", n.config.BaseURL, n.config.PhoneNumberID)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+n.config.AccessToken)
	request.Header.Set("Content-Type", "application/json")

	response, err := n.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		n.logger.Warn("cloud api rejected message",
			"status", response.StatusCode,
			"to", payload.To,
			"detail", string(detail),
		)
		return fmt.Errorf("cloud api returned status %d", response.StatusCode)
	}

	return nil
}
