package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/perceptionlabs/procreport/internal/domain/model"
)

// UserEmailer resolves the authenticated identity's address; Session
// implements it.
type UserEmailer interface {
	UserEmail(ctx context.Context) (string, error)
}

// MailClient delivers rendered reports through the Graph sendMail endpoint.
// Unlike the drive lookups, a send failure is fatal upstream: an unsent
// report defeats the run's purpose.
type MailClient struct {
	baseURL string
	httpc   *http.Client
	sender  UserEmailer
	logger  *slog.Logger
}

// MailClientOptions holds the dependencies for creating a MailClient.
type MailClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	// Sender resolves the default recipient (the authenticated identity).
	Sender UserEmailer
	Logger *slog.Logger
}

// NewMailClient creates a MailClient.
func NewMailClient(opts MailClientOptions) *MailClient {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MailClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		httpc:   opts.HTTPClient,
		sender:  opts.Sender,
		logger:  logger,
	}
}

// sendMailRequest mirrors the Graph sendMail payload shape.
type sendMailRequest struct {
	Message         mailMessage `json:"message"`
	SaveToSentItems bool        `json:"saveToSentItems"`
}

type mailMessage struct {
	Subject      string          `json:"subject"`
	Body         mailBody        `json:"body"`
	ToRecipients []mailRecipient `json:"toRecipients"`
}

type mailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type mailRecipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// Send delivers the report. An empty recipient defaults to the authenticated
// sender's own address.
func (c *MailClient) Send(ctx context.Context, report model.Report, recipient string) error {
	if recipient == "" {
		self, err := c.sender.UserEmail(ctx)
		if err != nil {
			return fmt.Errorf("resolve default recipient: %w", err)
		}
		recipient = self
	}

	payload := sendMailRequest{
		Message: mailMessage{
			Subject: report.Subject,
			Body: mailBody{
				ContentType: "HTML",
				Content:     report.HTMLBody,
			},
			ToRecipients: []mailRecipient{
				{EmailAddress: emailAddress{Address: recipient}},
			},
		},
		SaveToSentItems: true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize sendMail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/me/sendMail", bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("build sendMail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send report mail: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close

	// Graph returns 202 Accepted on success.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("send report mail: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	c.logger.Info("report mail sent", "recipient", recipient, "subject", report.Subject)
	return nil
}
