// Package email delivers transactional mail through an HTTP mail API.
// Without an API key it degrades to logging the reset link, which keeps
// local development working with no mail account.
package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	httputils "github.com/teamcbatch1/conceptclarity/server/utils/http"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

const (
	defaultBaseURL = "https://api.sendgrid.com"
	sendTimeout    = 30 * time.Second
)

type Mailer struct {
	apiKey    string
	from      string
	clientURL string
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
}

func NewMailer(apiKey, from, clientURL string) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		from:      from,
		clientURL: clientURL,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: sendTimeout},
		logger:    logging.AppLogger,
	}
}

type personalization struct {
	To []emailAddress `json:"to"`
}

type emailAddress struct {
	Email string `json:"email"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
}

// SendPasswordResetEmail mails the reset link. The caller treats delivery
// failure as non-fatal: forgot-password responses never reveal whether the
// mail went out.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, username, resetToken string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.clientURL, resetToken)

	if m.apiKey == "" {
		if m.logger != nil {
			m.logger.Info("mail delivery not configured, logging reset link",
				zap.String("to", to), zap.String("reset_link", resetLink))
		}
		return nil
	}

	body := sendRequest{
		Personalizations: []personalization{{To: []emailAddress{{Email: to}}}},
		From:             emailAddress{Email: m.from},
		Subject:          "Password Reset Request - Concept Clarity",
		Content: []mailContent{{
			Type:  "text/plain",
			Value: resetBody(username, resetLink),
		}},
	}

	headers := map[string]string{"Authorization": "Bearer " + m.apiKey}
	err := httputils.PostJSON(ctx, m.client, m.baseURL+"/v3/mail/send", headers, body, nil)
	if err != nil {
		if m.logger != nil {
			m.logger.Error("password reset email failed", zap.String("to", to), zap.Error(err))
		}
		return err
	}
	return nil
}

func resetBody(username, resetLink string) string {
	return fmt.Sprintf(`Hi %s,

We received a request to reset your password for your account. Click the link below to set a new password:

%s

This link will expire in 5 minutes.

If you did not request a password reset, please ignore this email. Your account remains secure.

Thanks,
Team Concept Clarity
`, username, resetLink)
}
